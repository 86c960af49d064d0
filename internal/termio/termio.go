// Package termio provides the default terminal IO port: stdout emission
// and blocking single-character stdin reads.
package termio

import (
	"bufio"
	"os"

	"github.com/mattn/go-isatty"
)

// StdioPort adapts standard input and output to the machine's Port
// capability. On a terminal every emitted character is flushed immediately
// so interactive programs stay responsive; piped output stays buffered.
type StdioPort struct {
	in  *bufio.Reader
	out *bufio.Writer
	tty bool
}

func NewStdioPort() *StdioPort {
	return &StdioPort{
		in:  bufio.NewReader(os.Stdin),
		out: bufio.NewWriter(os.Stdout),
		tty: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

func (p *StdioPort) Emit(c byte, n int) {
	for i := 0; i < n; i++ {
		p.out.WriteByte(c)
	}
	if p.tty {
		p.out.Flush()
	}
}

// ConsumeOne blocks until one byte is available on stdin. End of input
// yields zero bytes, keeping execution error-free.
func (p *StdioPort) ConsumeOne() byte {
	c, err := p.in.ReadByte()
	if err != nil {
		return 0
	}
	return c
}

func (p *StdioPort) Reset() {
	p.out.Flush()
}

// Flush drains buffered output. Call before process exit when stdout is
// not a terminal.
func (p *StdioPort) Flush() {
	p.out.Flush()
}
