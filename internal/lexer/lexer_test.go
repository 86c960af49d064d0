package lexer

import (
	"strings"
	"testing"
)

func TestLexRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"+-<>[],.",
		"comment with spaces\nand lines",
		".a̐éö̲.\n[+-]",
		"+\r\n-",
	}
	for _, input := range inputs {
		var sb strings.Builder
		for _, tok := range Lex(input) {
			sb.WriteString(tok.Text)
		}
		if got := sb.String(); got != input {
			t.Errorf("round trip broke for %q: got %q", input, got)
		}
	}
}

func TestLexClusters(t *testing.T) {
	// combining marks must stay attached to their base characters
	input := ".a̐éö̲.\n[+-]"
	tokens := Lex(input)
	if len(tokens) != 10 {
		t.Fatalf("expected 10 clusters, got %d", len(tokens))
	}
	if tokens[1].Text != "a̐" {
		t.Errorf("cluster 1 split: got %q", tokens[1].Text)
	}
}

func TestLexOffsets(t *testing.T) {
	input := "+a̐-\r\n<"
	tokens := Lex(input)

	offset := 0
	for i, tok := range tokens {
		if tok.Offset != offset {
			t.Errorf("token %d: offset got %d, want %d", i, tok.Offset, offset)
		}
		offset += len(tok.Text)
	}
	if offset != len(input) {
		t.Errorf("tokens cover %d bytes, input has %d", offset, len(input))
	}
}

func TestLexCRLF(t *testing.T) {
	tokens := Lex("+\r\n-")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if !tokens[1].IsNewline() {
		t.Errorf("\\r\\n not recognized as one newline token: %q", tokens[1].Text)
	}
}

func TestLexEmpty(t *testing.T) {
	if got := Lex(""); len(got) != 0 {
		t.Errorf("empty input: got %d tokens", len(got))
	}
}
