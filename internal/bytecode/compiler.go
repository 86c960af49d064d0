package bytecode

import (
	"github.com/funvibe/funbf/internal/loops"
	"github.com/funvibe/funbf/internal/source"
	"github.com/funvibe/funbf/internal/token"
)

// symbolOps maps the six coalescible symbols to their opcodes. Loop
// brackets are handled separately because they are never coalesced.
var symbolOps = map[string]Opcode{
	token.MoveFwd:  OP_MOVE_FWD,
	token.MoveBack: OP_MOVE_BACK,
	token.Add:      OP_ADD,
	token.Sub:      OP_SUB,
	token.Read:     OP_READ,
	token.Write:    OP_WRITE,
}

// Compile scans the token sequence once, coalescing maximal runs of
// identical non-jump symbols into single operand-bearing instructions and
// emitting unresolved jumps for brackets, then patches every jump operand
// from the loop match table.
//
// A source with no instruction symbols compiles to an empty program.
// An unmatched bracket yields a *loops.UnmatchedBracketError whose index
// refers to the emitted instruction sequence; no partial program is
// returned.
func Compile(src *source.SourceFile) ([]Instruction, error) {
	tokens := src.Tokens
	program := make([]Instruction, 0, len(tokens))

	row, col := 0, 0
	idx := 0
	for idx < len(tokens) {
		t := tokens[idx]
		switch op, isData := symbolOps[t.Text]; {
		case isData:
			run := 1
			for idx+run < len(tokens) && tokens[idx+run].Text == t.Text {
				run++
			}
			program = append(program, Instruction{
				Op:    op,
				Arg:   Operand{Value: run, Resolved: true},
				Range: spanRange(tokens, idx, run, row, col),
			})
			col += run
			idx += run
		case t.IsLoopStart():
			program = append(program, Instruction{
				Op:    OP_JUMP_IF_ZERO,
				Range: spanRange(tokens, idx, 1, row, col),
			})
			col++
			idx++
		case t.IsLoopEnd():
			program = append(program, Instruction{
				Op:    OP_JUMP_IF_NONZERO,
				Range: spanRange(tokens, idx, 1, row, col),
			})
			col++
			idx++
		case t.IsNewline():
			row++
			col = 0
			idx++
		default:
			// comment text
			col++
			idx++
		}
	}

	table, err := loops.Match(program)
	if err != nil {
		return nil, err
	}
	for i := range program {
		switch program[i].Op {
		case OP_JUMP_IF_ZERO:
			program[i].Arg = Operand{Value: table.StartToEnd[i], Resolved: true}
		case OP_JUMP_IF_NONZERO:
			program[i].Arg = Operand{Value: table.EndToStart[i], Resolved: true}
		}
	}
	return program, nil
}

// spanRange covers the run of n tokens starting at idx. Runs never cross a
// newline, so the span stays on one row.
func spanRange(tokens []token.Token, idx, n, row, col int) Range {
	last := tokens[idx+n-1]
	return Range{
		Start: Location{Row: row, Column: col, Offset: tokens[idx].Offset},
		End:   Location{Row: row, Column: col + n, Offset: last.Offset + len(last.Text)},
	}
}
