// Package lexer splits raw source text into grapheme-cluster tokens.
//
// Comment text may contain multi-byte or combining-mark sequences, and
// splitting a cluster could spuriously expose an instruction symbol, so the
// scan works on user-perceived characters rather than runes or bytes.
package lexer

import (
	"github.com/rivo/uniseg"

	"github.com/funvibe/funbf/internal/token"
)

// Lex splits input into an ordered token sequence covering the entire text
// with no gaps or overlaps. It always succeeds; empty input yields an empty
// sequence.
func Lex(input string) []token.Token {
	tokens := make([]token.Token, 0, len(input))
	offset := 0
	state := -1
	rest := input
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		tokens = append(tokens, token.Token{Offset: offset, Text: cluster})
		offset += len(cluster)
	}
	return tokens
}
