// Package loops matches loop brackets in any instruction-like sequence.
package loops

import "fmt"

// Code is anything that can be asked whether it opens or closes a loop.
// Both raw tokens and compiled instructions satisfy it.
type Code interface {
	IsLoopStart() bool
	IsLoopEnd() bool
}

// Side names the unmatched half of a bracket pair.
type Side int

const (
	SideStart Side = iota // an unmatched loop-start
	SideEnd               // an unmatched loop-end
)

func (s Side) String() string {
	if s == SideStart {
		return "loop-start"
	}
	return "loop-end"
}

// UnmatchedBracketError reports the bracket that could not be paired.
//
// An extra end bracket is reported at the first unmatched end found scanning
// left to right. An extra start bracket is reported at the most recently
// opened start that never closed, not the earliest one.
type UnmatchedBracketError struct {
	Side  Side
	Index int
}

func (e *UnmatchedBracketError) Error() string {
	return fmt.Sprintf("unmatched %s at index %d", e.Side, e.Index)
}

// Table holds the bidirectional start-end index maps of a fully matched
// sequence. Built once, read-only afterward.
type Table struct {
	StartToEnd map[int]int
	EndToStart map[int]int
}

// Match pairs every loop-start with its loop-end by stack-based balancing.
// Every matched pair lands in both maps exactly once; the first pairing
// failure aborts the scan.
func Match[C Code](codes []C) (*Table, error) {
	t := &Table{
		StartToEnd: make(map[int]int),
		EndToStart: make(map[int]int),
	}

	starts := make([]int, 0, 16)
	for idx, code := range codes {
		switch {
		case code.IsLoopStart():
			starts = append(starts, idx)
		case code.IsLoopEnd():
			if len(starts) == 0 {
				return nil, &UnmatchedBracketError{Side: SideEnd, Index: idx}
			}
			start := starts[len(starts)-1]
			starts = starts[:len(starts)-1]
			t.StartToEnd[start] = idx
			t.EndToStart[idx] = start
		}
	}
	if len(starts) > 0 {
		return nil, &UnmatchedBracketError{Side: SideStart, Index: starts[len(starts)-1]}
	}
	return t, nil
}
