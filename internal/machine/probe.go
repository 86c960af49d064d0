package machine

import "time"

// Probe observes instruction execution out of band. It receives the
// executed opcode name and the elapsed wall time of that single step.
// Implementations must not affect machine semantics; observations carry no
// ordering guarantees beyond the single-threaded eval loop itself.
type Probe interface {
	Observe(op string, elapsed time.Duration)
}
