// Package machine implements the tape machine: a fixed-size wrap-around
// byte tape, a data pointer, an instruction pointer, and an injected IO
// port. It executes either raw tokens (direct mode) or compiled
// instructions (compiled mode); both modes produce byte-identical output
// for the same program and input stream.
package machine

import (
	"time"

	"github.com/funvibe/funbf/internal/bytecode"
	"github.com/funvibe/funbf/internal/config"
	"github.com/funvibe/funbf/internal/loops"
	"github.com/funvibe/funbf/internal/source"
	"github.com/funvibe/funbf/internal/token"
)

// Machine owns the tape and both pointers exclusively; it is not safe for
// concurrent use. Run two programs concurrently on two machines, or reset
// one machine between runs.
type Machine struct {
	cells    []byte
	dataPtr  int
	instrPtr int
	port     Port
	probe    Probe
}

// New creates a machine with tapeSize cells. A non-positive size falls
// back to the default tape. The tape is never resized afterwards.
func New(tapeSize int, port Port) *Machine {
	if tapeSize <= 0 {
		tapeSize = config.DefaultTapeSize
	}
	m := &Machine{
		cells: make([]byte, tapeSize),
		port:  port,
	}
	m.Reset()
	return m
}

// SetProbe installs an instrumentation probe. A nil probe (the default)
// means no observation overhead.
func (m *Machine) SetProbe(p Probe) { m.probe = p }

// Reset returns the machine to its ready state: all cells zero, data
// pointer at the tape midpoint so programs can move either way, instruction
// pointer at zero, port flushed. Eval calls reset on entry; reusing a
// machine between evaluations without a reset is undefined.
func (m *Machine) Reset() {
	for i := range m.cells {
		m.cells[i] = 0
	}
	m.dataPtr = len(m.cells) / 2
	m.instrPtr = 0
	m.port.Reset()
}

// . Emit the current cell n times.
func (m *Machine) write(n int) {
	m.port.Emit(m.cells[m.dataPtr], n)
	m.instrPtr++
}

// , Consume exactly one character regardless of the coalesced count.
func (m *Machine) read() {
	m.cells[m.dataPtr] = m.port.ConsumeOne()
	m.instrPtr++
}

// > Advance the data pointer n cells, wrapping at the tape end.
func (m *Machine) moveFwd(n int) {
	m.dataPtr = wrap(m.dataPtr+n, len(m.cells))
	m.instrPtr++
}

// < Retreat the data pointer n cells, wrapping at the tape start.
func (m *Machine) moveBack(n int) {
	m.dataPtr = wrap(m.dataPtr-n, len(m.cells))
	m.instrPtr++
}

// + Increase the current cell by n modulo the cell range.
func (m *Machine) add(n int) {
	m.cells[m.dataPtr] += byte(n)
	m.instrPtr++
}

// - Decrease the current cell by n modulo the cell range.
func (m *Machine) sub(n int) {
	m.cells[m.dataPtr] -= byte(n)
	m.instrPtr++
}

// [ Jump past the matching ] when the current cell is zero.
func (m *Machine) jumpIfZero(end int) {
	if m.cells[m.dataPtr] == 0 {
		m.instrPtr = end + 1
	} else {
		m.instrPtr++
	}
}

// ] Jump back to the matching [ when the current cell is nonzero.
func (m *Machine) jumpIfNonZero(start int) {
	if m.cells[m.dataPtr] != 0 {
		m.instrPtr = start
	} else {
		m.instrPtr++
	}
}

// wrap reduces i modulo size, mapping negatives into [0, size).
func wrap(i, size int) int {
	i %= size
	if i < 0 {
		i += size
	}
	return i
}

// EvalSource reinterprets raw tokens step by step (direct mode). The loop
// match table is recomputed from the tokens on every call; an unmatched
// bracket fails before any instruction executes, exactly as in compiled
// mode. Every operation has an implicit repeat count of one.
func (m *Machine) EvalSource(src *source.SourceFile) error {
	m.Reset()

	table, err := loops.Match(src.Tokens)
	if err != nil {
		return err
	}

	for m.instrPtr < src.Len() {
		var start time.Time
		if m.probe != nil {
			start = time.Now()
		}

		var op bytecode.Opcode
		switch t := src.At(m.instrPtr); t.Text {
		case token.Write:
			m.write(1)
			op = bytecode.OP_WRITE
		case token.Read:
			m.read()
			op = bytecode.OP_READ
		case token.MoveFwd:
			m.moveFwd(1)
			op = bytecode.OP_MOVE_FWD
		case token.MoveBack:
			m.moveBack(1)
			op = bytecode.OP_MOVE_BACK
		case token.Add:
			m.add(1)
			op = bytecode.OP_ADD
		case token.Sub:
			m.sub(1)
			op = bytecode.OP_SUB
		case token.LoopStart:
			m.jumpIfZero(table.StartToEnd[m.instrPtr])
			op = bytecode.OP_JUMP_IF_ZERO
		case token.LoopEnd:
			m.jumpIfNonZero(table.EndToStart[m.instrPtr])
			op = bytecode.OP_JUMP_IF_NONZERO
		default:
			// comment text
			m.instrPtr++
			continue
		}

		if m.probe != nil {
			m.probe.Observe(bytecode.OpcodeNames[op], time.Since(start))
		}
	}
	return nil
}

// EvalProgram executes a compiled instruction sequence (compiled mode).
// Jump targets are pre-resolved by the compiler, so no matching happens at
// run time and no runtime error exists: all arithmetic wraps, the program
// terminates when the instruction pointer reaches the program length.
func (m *Machine) EvalProgram(program []bytecode.Instruction) {
	m.Reset()

	for m.instrPtr < len(program) {
		in := program[m.instrPtr]

		var start time.Time
		if m.probe != nil {
			start = time.Now()
		}

		switch in.Op {
		case bytecode.OP_WRITE:
			m.write(in.Arg.Value)
		case bytecode.OP_READ:
			m.read()
		case bytecode.OP_MOVE_FWD:
			m.moveFwd(in.Arg.Value)
		case bytecode.OP_MOVE_BACK:
			m.moveBack(in.Arg.Value)
		case bytecode.OP_ADD:
			m.add(in.Arg.Value)
		case bytecode.OP_SUB:
			m.sub(in.Arg.Value)
		case bytecode.OP_JUMP_IF_ZERO:
			m.jumpIfZero(in.Arg.Value)
		case bytecode.OP_JUMP_IF_NONZERO:
			m.jumpIfNonZero(in.Arg.Value)
		}

		if m.probe != nil {
			m.probe.Observe(bytecode.OpcodeNames[in.Op], time.Since(start))
		}
	}
}
