package bytecode

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/funbf/internal/loops"
	"github.com/funvibe/funbf/internal/pipeline"
	"github.com/funvibe/funbf/internal/source"
)

func compile(t *testing.T, input string) []Instruction {
	t.Helper()
	program, err := Compile(source.FromString(input, "test"))
	if err != nil {
		t.Fatalf("compile error: %s", err)
	}
	return program
}

func TestCompileRangesAndPatch(t *testing.T) {
	program := compile(t, "[+-,comment.]\n<>")

	want := []Instruction{
		{Op: OP_JUMP_IF_ZERO, Arg: Operand{5, true}, Range: rangeAt(0, 0, 0, 1)},
		{Op: OP_ADD, Arg: Operand{1, true}, Range: rangeAt(0, 1, 1, 1)},
		{Op: OP_SUB, Arg: Operand{1, true}, Range: rangeAt(0, 2, 2, 1)},
		{Op: OP_READ, Arg: Operand{1, true}, Range: rangeAt(0, 3, 3, 1)},
		// the 7-byte comment advances column and offset but emits nothing
		{Op: OP_WRITE, Arg: Operand{1, true}, Range: rangeAt(0, 11, 11, 1)},
		{Op: OP_JUMP_IF_NONZERO, Arg: Operand{0, true}, Range: rangeAt(0, 12, 12, 1)},
		// offset 13 is the newline
		{Op: OP_MOVE_BACK, Arg: Operand{1, true}, Range: rangeAt(1, 0, 14, 1)},
		{Op: OP_MOVE_FWD, Arg: Operand{1, true}, Range: rangeAt(1, 1, 15, 1)},
	}

	if len(program) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(program), len(want))
	}
	for i, w := range want {
		if program[i] != w {
			t.Errorf("instruction %d:\ngot  %+v\nwant %+v", i, program[i], w)
		}
	}
}

// rangeAt builds the source range of a run of n columns on one row.
func rangeAt(row, col, offset, n int) Range {
	return Range{
		Start: Location{Row: row, Column: col, Offset: offset},
		End:   Location{Row: row, Column: col + n, Offset: offset + n},
	}
}

func TestCompileCoalescing(t *testing.T) {
	program := compile(t, "+++>>--")

	want := []struct {
		op  Opcode
		arg int
	}{
		{OP_ADD, 3},
		{OP_MOVE_FWD, 2},
		{OP_SUB, 2},
	}
	if len(program) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(program), len(want))
	}
	for i, w := range want {
		if program[i].Op != w.op || program[i].Arg.Value != w.arg {
			t.Errorf("instruction %d: got %s x%d, want %s x%d",
				i, program[i].Op, program[i].Arg.Value, w.op, w.arg)
		}
		if !program[i].Arg.Resolved {
			t.Errorf("instruction %d: operand left unresolved", i)
		}
	}
}

func TestCompileRunBrokenByNewline(t *testing.T) {
	program := compile(t, "++\n++")
	if len(program) != 2 {
		t.Fatalf("got %d instructions, want 2", len(program))
	}
	for i := range program {
		if program[i].Arg.Value != 2 {
			t.Errorf("instruction %d: arg %d, want 2", i, program[i].Arg.Value)
		}
	}
	if program[1].Range.Start.Row != 1 {
		t.Errorf("second run row = %d, want 1", program[1].Range.Start.Row)
	}
}

func TestCompileBracketsNeverCoalesce(t *testing.T) {
	program := compile(t, "[[]]")
	if len(program) != 4 {
		t.Fatalf("got %d instructions, want 4", len(program))
	}
}

func TestCompileJumpTable(t *testing.T) {
	program := compile(t, "+[[]]")

	wantArgs := []int{1, 4, 3, 2, 1}
	for i, want := range wantArgs {
		if got := program[i].Arg.Value; got != want {
			t.Errorf("instruction %d: arg %d, want %d", i, got, want)
		}
	}
}

func TestCompileEmpty(t *testing.T) {
	for _, input := range []string{"", "just a comment\n", "another, comment? no: commas and dots count\n"} {
		program, err := Compile(source.FromString(input, "test"))
		if err != nil {
			t.Fatalf("%q: unexpected error: %s", input, err)
		}
		if input == "" && len(program) != 0 {
			t.Errorf("empty input compiled to %d instructions", len(program))
		}
	}
}

func TestCompileUnmatched(t *testing.T) {
	tests := []struct {
		input string
		side  loops.Side
		index int
	}{
		{"[", loops.SideStart, 0},
		{"+]", loops.SideEnd, 1},
		{"comment [ more", loops.SideStart, 0},
	}
	for _, tt := range tests {
		_, err := Compile(source.FromString(tt.input, "test"))
		var ub *loops.UnmatchedBracketError
		if !errors.As(err, &ub) {
			t.Errorf("%q: error is %T, want *UnmatchedBracketError", tt.input, err)
			continue
		}
		if ub.Side != tt.side || ub.Index != tt.index {
			t.Errorf("%q: got %s at %d, want %s at %d",
				tt.input, ub.Side, ub.Index, tt.side, tt.index)
		}
	}
}

func TestDisassemble(t *testing.T) {
	out := Disassemble(compile(t, "+++[-]."), "sample.bf")
	for _, want := range []string{"== sample.bf ==", "ADD", "x3", "JUMP_IF_ZERO", "-> 0003", "WRITE"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestPipelineStages(t *testing.T) {
	ctx := pipeline.NewPipelineContext("+[-]", "test")
	final := pipeline.New(source.LexerProcessor{}, CompilerProcessor{}).Run(ctx)

	if len(final.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", final.Errors)
	}
	program, ok := final.Program.([]Instruction)
	if !ok {
		t.Fatalf("Program is %T, want []Instruction", final.Program)
	}
	if len(program) != 4 {
		t.Errorf("got %d instructions, want 4", len(program))
	}
}

func TestPipelineCollectsCompileError(t *testing.T) {
	ctx := pipeline.NewPipelineContext("][", "test")
	final := pipeline.New(source.LexerProcessor{}, CompilerProcessor{}).Run(ctx)

	if len(final.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(final.Errors))
	}
	var ub *loops.UnmatchedBracketError
	if !errors.As(final.Errors[0], &ub) {
		t.Fatalf("error is %T, want *UnmatchedBracketError", final.Errors[0])
	}
	if final.Program != nil {
		t.Errorf("partial program returned alongside error")
	}
}
