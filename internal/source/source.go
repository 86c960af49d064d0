// Package source provides tape-language source files: raw text, a
// diagnostic label, and the lexed token sequence.
package source

import (
	"fmt"
	"os"

	"github.com/funvibe/funbf/internal/lexer"
	"github.com/funvibe/funbf/internal/token"
)

// UnreadableError means the source could not be acquired. It carries the
// attempted identifier and the underlying cause; the core never retries.
type UnreadableError struct {
	Label string
	Err   error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("failed to read %s, %v", e.Label, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// SourceFile is an immutable source unit. Label is used only in
// diagnostics, never in semantics.
type SourceFile struct {
	Label  string
	Raw    string
	Tokens []token.Token
}

// FromString lexes raw text under the given label. Always succeeds.
func FromString(raw, label string) *SourceFile {
	return &SourceFile{
		Label:  label,
		Raw:    raw,
		Tokens: lexer.Lex(raw),
	}
}

// FromFile reads and lexes the file at path. Failure to read yields an
// *UnreadableError.
func FromFile(path string) (*SourceFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnreadableError{Label: path, Err: err}
	}
	return FromString(string(raw), path), nil
}

// Len returns the number of tokens.
func (s *SourceFile) Len() int { return len(s.Tokens) }

func (s *SourceFile) IsEmpty() bool { return len(s.Tokens) == 0 }

// At returns the token at index i. i must be in range.
func (s *SourceFile) At(i int) token.Token { return s.Tokens[i] }
