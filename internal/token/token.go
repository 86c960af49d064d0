// Package token defines the lexical unit of a tape program and the
// eight instruction symbols.
package token

// The eight instruction symbols. Every other grapheme is comment text.
const (
	MoveFwd   = ">"
	MoveBack  = "<"
	Add       = "+"
	Sub       = "-"
	Read      = ","
	Write     = "."
	LoopStart = "["
	LoopEnd   = "]"
)

// Token is one user-perceived character of the raw source: exactly one
// grapheme cluster plus its byte offset. Tokens are produced once by the
// lexer and never mutated.
type Token struct {
	// Offset is the byte offset of the cluster in the raw source.
	Offset int

	// Text is the cluster itself. May be multi-byte ("a̐", "\r\n").
	Text string
}

func (t Token) IsLoopStart() bool { return t.Text == LoopStart }
func (t Token) IsLoopEnd() bool   { return t.Text == LoopEnd }

// IsNewline reports whether the token ends a source line. "\r\n" is a
// single grapheme cluster, so both line-ending styles arrive as one token.
func (t Token) IsNewline() bool { return t.Text == "\n" || t.Text == "\r\n" }

// IsInstruction reports whether s is one of the eight instruction symbols.
func IsInstruction(s string) bool {
	switch s {
	case MoveFwd, MoveBack, Add, Sub, Read, Write, LoopStart, LoopEnd:
		return true
	}
	return false
}
