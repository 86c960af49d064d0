package config

// Version is the interpreter version reported by -version.
const Version = "0.1.0"

const SourceFileExt = ".bf"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".bf", ".b"}

// DefaultTapeSize is the number of tape cells when no size is configured.
const DefaultTapeSize = 60000

// ConfigFileName is the per-project configuration file picked up from the
// working directory when no -config flag is given.
const ConfigFileName = "funbf.yaml"

// Execution modes
const (
	ModeCompiled = "compiled"
	ModeDirect   = "direct"
)

// Probe selections
const (
	ProbeOff    = "off"
	ProbeCounts = "counts"
	ProbeTiming = "timing"
)
