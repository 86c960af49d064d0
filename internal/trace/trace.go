// Package trace provides instrumentation probes for the machine: counting
// and timing collectors that observe instruction execution out of band and
// produce a per-run report. Probes never influence execution; they only
// consume what the machine reports.
package trace

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// batchSize bounds the raw-sample buffer per opcode. A long run produces
// billions of samples; keeping them all would exhaust memory, so each full
// batch is folded into its mean and the means carry the statistics.
const batchSize = 5000

type points struct {
	batch []float64 // pending raw samples, ns
	means []float64 // one mean per folded batch
	min   float64
	max   float64
	count uint64
}

func newPoints() *points {
	return &points{
		batch: make([]float64, 0, batchSize),
		min:   math.Inf(1),
		max:   math.Inf(-1),
	}
}

func (p *points) add(ns float64) {
	p.count++
	if ns < p.min {
		p.min = ns
	}
	if ns > p.max {
		p.max = ns
	}
	p.batch = append(p.batch, ns)
	if len(p.batch) >= batchSize {
		p.fold()
	}
}

// fold collapses the pending batch into one mean sample.
func (p *points) fold() {
	if len(p.batch) == 0 {
		return
	}
	sum := 0.0
	for _, v := range p.batch {
		sum += v
	}
	p.means = append(p.means, sum/float64(len(p.batch)))
	p.batch = p.batch[:0]
}

func (p *points) stats() (mean, stddev float64) {
	if len(p.means) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range p.means {
		sum += v
	}
	mean = sum / float64(len(p.means))
	varsum := 0.0
	for _, v := range p.means {
		d := v - mean
		varsum += d * d
	}
	return mean, math.Sqrt(varsum / float64(len(p.means)))
}

// Stat is the aggregated result for one opcode.
type Stat struct {
	Op       string
	Count    uint64
	MeanNs   float64
	MinNs    float64
	MaxNs    float64
	StdDevNs float64
}

// Report is the finalized output of one probed run. RunID is a fresh UUID
// so reports from separate runs stay distinguishable in a shared store.
type Report struct {
	RunID string
	Stats []Stat
}

func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("run %s\n", r.RunID))
	sb.WriteString(fmt.Sprintf("%-16s %12s %10s %10s %10s %10s\n",
		"op", "count", "mean(ns)", "min(ns)", "max(ns)", "stddev"))
	for _, s := range r.Stats {
		sb.WriteString(fmt.Sprintf("%-16s %12d %10.1f %10.1f %10.1f %10.1f\n",
			s.Op, s.Count, s.MeanNs, s.MinNs, s.MaxNs, s.StdDevNs))
	}
	return sb.String()
}

// CountingProbe counts executed instructions per opcode.
type CountingProbe struct {
	counts map[string]uint64
}

func NewCountingProbe() *CountingProbe {
	return &CountingProbe{counts: make(map[string]uint64)}
}

func (p *CountingProbe) Observe(op string, _ time.Duration) {
	p.counts[op]++
}

// Finalize produces the report and resets the probe for reuse.
func (p *CountingProbe) Finalize() Report {
	r := Report{RunID: uuid.NewString()}
	for _, op := range sortedKeys(p.counts) {
		r.Stats = append(r.Stats, Stat{Op: op, Count: p.counts[op]})
	}
	p.counts = make(map[string]uint64)
	return r
}

// TimingProbe aggregates per-instruction wall times with bounded memory.
type TimingProbe struct {
	c map[string]*points
}

func NewTimingProbe() *TimingProbe {
	return &TimingProbe{c: make(map[string]*points)}
}

func (p *TimingProbe) Observe(op string, elapsed time.Duration) {
	pts, ok := p.c[op]
	if !ok {
		pts = newPoints()
		p.c[op] = pts
	}
	pts.add(float64(elapsed.Nanoseconds()))
}

// Finalize folds pending batches, produces the report and resets the probe.
func (p *TimingProbe) Finalize() Report {
	r := Report{RunID: uuid.NewString()}
	for _, op := range sortedKeys(p.c) {
		pts := p.c[op]
		pts.fold()
		mean, stddev := pts.stats()
		r.Stats = append(r.Stats, Stat{
			Op:       op,
			Count:    pts.count,
			MeanNs:   mean,
			MinNs:    pts.min,
			MaxNs:    pts.max,
			StdDevNs: stddev,
		})
	}
	p.c = make(map[string]*points)
	return r
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
