package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of a compiled program
func Disassemble(program []Instruction, name string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("== %s ==\n", name))

	lastRow := -1
	for i, in := range program {
		sb.WriteString(fmt.Sprintf("%04d ", i))

		if in.Range.Start.Row == lastRow {
			sb.WriteString("   | ")
		} else {
			sb.WriteString(fmt.Sprintf("%4d ", in.Range.Start.Row))
			lastRow = in.Range.Start.Row
		}

		switch in.Op {
		case OP_JUMP_IF_ZERO, OP_JUMP_IF_NONZERO:
			sb.WriteString(fmt.Sprintf("%-16s -> %04d\n", in.Op, in.Arg.Value))
		default:
			sb.WriteString(fmt.Sprintf("%-16s x%d\n", in.Op, in.Arg.Value))
		}
	}

	return sb.String()
}
