package machine

import "bytes"

// Port is the IO capability the machine drives. The machine owns no
// streams itself; reads and writes go through an injected Port.
//
// ConsumeOne blocks the calling goroutine until one character is
// available. There is no timeout and no cancellation.
type Port interface {
	// Emit writes the character code c to the output stream n times.
	Emit(c byte, n int)

	// ConsumeOne returns the next character code from the input stream.
	ConsumeOne() byte

	// Reset flushes and rewinds the port for a fresh evaluation.
	Reset()
}

// BufferPort is an in-memory Port for tests and embedding: output collects
// in a buffer, input is served from a fixed string. Exhausted input yields
// zero bytes.
type BufferPort struct {
	input string
	pos   int
	out   bytes.Buffer
}

func NewBufferPort(input string) *BufferPort {
	return &BufferPort{input: input}
}

func (p *BufferPort) Emit(c byte, n int) {
	for i := 0; i < n; i++ {
		p.out.WriteByte(c)
	}
}

func (p *BufferPort) ConsumeOne() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	c := p.input[p.pos]
	p.pos++
	return c
}

// Reset clears collected output and rewinds the input stream.
func (p *BufferPort) Reset() {
	p.out.Reset()
	p.pos = 0
}

// Output returns everything emitted since the last Reset.
func (p *BufferPort) Output() string { return p.out.String() }
