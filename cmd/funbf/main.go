package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/funvibe/funbf/internal/bytecode"
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/machine"
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/source"
	"github.com/funvibe/funbf/internal/termio"
	"github.com/funvibe/funbf/internal/trace"
)

const usage = `Usage: funbf [options] <file.bf>

Options:
  -direct           reinterpret raw tokens instead of running bytecode
  -dump             print the compiled program and exit
  -tape N           tape size in cells (default %d)
  -probe MODE       instrumentation: off, counts or timing (default off)
  -profile-db PATH  save the probe report to a sqlite file
  -config PATH      configuration file (default ./%s when present)
  -version          print version and exit
  -help             print this help
`

type options struct {
	file       string
	configPath string
	direct     bool
	dump       bool
	tape       int
	probe      string
	profileDB  string
}

func main() {
	if handleHelp() {
		return
	}
	if handleVersion() {
		return
	}

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "funbf: %s\n\n", err)
		printUsage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "funbf: %s\n", err)
		os.Exit(1)
	}

	if err := run(opts, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "funbf: %s\n", err)
		os.Exit(1)
	}
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if os.Args[1] != "-help" && os.Args[1] != "--help" && os.Args[1] != "help" {
		return false
	}
	printUsage(os.Stdout)
	return true
}

func handleVersion() bool {
	if os.Args[1] != "-version" && os.Args[1] != "--version" {
		return false
	}
	fmt.Printf("funbf %s\n", config.Version)
	return true
}

func printUsage(w *os.File) {
	fmt.Fprintf(w, usage, config.DefaultTapeSize, config.ConfigFileName)
}

func parseArgs(args []string) (*options, error) {
	opts := &options{tape: -1}

	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			break
		}
		value := func() (string, error) {
			if i+1 >= len(args) {
				return "", fmt.Errorf("flag %s needs a value", arg)
			}
			i++
			return args[i], nil
		}
		switch arg {
		case "-direct", "--direct":
			opts.direct = true
		case "-dump", "--dump":
			opts.dump = true
		case "-tape", "--tape":
			v, err := value()
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("invalid tape size %q", v)
			}
			opts.tape = n
		case "-probe", "--probe":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.probe = v
		case "-profile-db", "--profile-db":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.profileDB = v
		case "-config", "--config":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts.configPath = v
		default:
			return nil, fmt.Errorf("unknown flag %s", arg)
		}
	}

	if i >= len(args) {
		return nil, fmt.Errorf("expecting a source file")
	}
	opts.file = args[i]
	if i+1 < len(args) {
		return nil, fmt.Errorf("unexpected argument %s", args[i+1])
	}
	return opts, nil
}

// loadConfig resolves the effective configuration: built-in defaults, then
// the config file, then flag overrides.
func loadConfig(opts *options) (config.Config, error) {
	cfg := config.Default()

	path := opts.configPath
	if path == "" {
		if _, err := os.Stat(config.ConfigFileName); err == nil {
			path = config.ConfigFileName
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if opts.direct {
		cfg.Mode = config.ModeDirect
	}
	if opts.tape > 0 {
		cfg.Tape = opts.tape
	}
	if opts.probe != "" {
		cfg.Probe = opts.probe
	}
	if opts.profileDB != "" {
		cfg.ProfileDB = opts.profileDB
	}
	return cfg, cfg.Validate()
}

func run(opts *options, cfg config.Config) error {
	src, err := source.FromFile(opts.file)
	if err != nil {
		return err
	}

	ctx := pipeline.NewPipelineContext(src.Raw, src.Label)
	finalCtx := pipeline.New(
		source.LexerProcessor{},
		bytecode.CompilerProcessor{},
	).Run(ctx)
	if len(finalCtx.Errors) > 0 {
		for _, e := range finalCtx.Errors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", src.Label, e)
		}
		return fmt.Errorf("compilation failed")
	}
	program := finalCtx.Program.([]bytecode.Instruction)

	if opts.dump {
		fmt.Print(bytecode.Disassemble(program, src.Label))
		return nil
	}

	port := termio.NewStdioPort()
	m := machine.New(cfg.Tape, port)

	var finalize func() trace.Report
	switch cfg.Probe {
	case config.ProbeCounts:
		p := trace.NewCountingProbe()
		m.SetProbe(p)
		finalize = p.Finalize
	case config.ProbeTiming:
		p := trace.NewTimingProbe()
		m.SetProbe(p)
		finalize = p.Finalize
	}

	if cfg.Mode == config.ModeDirect {
		// Direct mode fails fast on the same unmatched brackets the
		// compile stage already rejected, so this error is unreachable
		// here; keep the check for library-style callers.
		if err := m.EvalSource(src); err != nil {
			return err
		}
	} else {
		m.EvalProgram(program)
	}
	port.Flush()

	if finalize != nil {
		report := finalize()
		fmt.Fprint(os.Stderr, report.String())
		if cfg.ProfileDB != "" {
			store, err := trace.OpenStore(cfg.ProfileDB)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Save(report, src.Label); err != nil {
				return err
			}
		}
	}
	return nil
}
