// Package bytecode compiles token sequences into resolved instruction
// sequences for the tape machine.
package bytecode

// Opcode represents a single machine instruction kind
type Opcode byte

const (
	// Data pointer movement
	OP_MOVE_FWD  Opcode = iota // > advance the data pointer
	OP_MOVE_BACK               // < retreat the data pointer

	// Cell arithmetic
	OP_ADD // + increment the current cell
	OP_SUB // - decrement the current cell

	// IO
	OP_READ  // , consume one character into the current cell
	OP_WRITE // . emit the current cell

	// Control flow
	OP_JUMP_IF_ZERO    // [ jump past the matching ] when the cell is zero
	OP_JUMP_IF_NONZERO // ] jump back to the matching [ when the cell is nonzero
)

// OpcodeNames maps opcodes to their string names (for disassembly and probes)
var OpcodeNames = map[Opcode]string{
	OP_MOVE_FWD:  "MOVE_FWD",
	OP_MOVE_BACK: "MOVE_BACK",

	OP_ADD: "ADD",
	OP_SUB: "SUB",

	OP_READ:  "READ",
	OP_WRITE: "WRITE",

	OP_JUMP_IF_ZERO:    "JUMP_IF_ZERO",
	OP_JUMP_IF_NONZERO: "JUMP_IF_NONZERO",
}

func (op Opcode) String() string { return OpcodeNames[op] }

// Operand is a tagged instruction argument. For the six data opcodes it is
// the coalesced repeat count, resolved at emission. For the two jump opcodes
// it starts unresolved and is written exactly once by the patch pass; a
// tagged value avoids a magic index that could collide with a real target.
type Operand struct {
	Value    int
	Resolved bool
}

// Location is a position in the raw source.
type Location struct {
	Row    int // zero-based line
	Column int // zero-based column in grapheme clusters
	Offset int // byte offset
}

// Range is the half-open source span an instruction was compiled from.
// A coalesced instruction spans its whole run.
type Range struct {
	Start Location
	End   Location
}

// Instruction is one executable machine operation. Produced once by the
// compiler and read-only after jump patching.
type Instruction struct {
	Op    Opcode
	Arg   Operand
	Range Range
}

func (in Instruction) IsLoopStart() bool { return in.Op == OP_JUMP_IF_ZERO }
func (in Instruction) IsLoopEnd() bool   { return in.Op == OP_JUMP_IF_NONZERO }
