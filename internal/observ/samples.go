package observ

import (
	"slices"
	"time"
)

// Samples collects repeated measurements of the same operation.
type Samples struct {
	Name  string
	Bytes int
	durs  []time.Duration
}

// NewSamples prepares a collector for an input of the given size.
func NewSamples(name string, bytes, capacity int) *Samples {
	return &Samples{Name: name, Bytes: bytes, durs: make([]time.Duration, 0, capacity)}
}

// Add records one run.
func (s *Samples) Add(d time.Duration) { s.durs = append(s.durs, d) }

// Time runs fn and records how long it took.
func (s *Samples) Time(fn func()) {
	start := time.Now()
	fn()
	s.Add(time.Since(start))
}

// Stats is the summary of a Samples collection.
type Stats struct {
	Name   string        `json:"name"`
	Runs   int           `json:"runs"`
	Bytes  int           `json:"bytes"`
	Min    time.Duration `json:"min_ns"`
	Median time.Duration `json:"median_ns"`
	Mean   time.Duration `json:"mean_ns"`
	Max    time.Duration `json:"max_ns"`
}

// Stats computes min/median/mean/max. A zero Stats is returned for no runs.
func (s *Samples) Stats() Stats {
	st := Stats{Name: s.Name, Runs: len(s.durs), Bytes: s.Bytes}
	if len(s.durs) == 0 {
		return st
	}
	sorted := slices.Clone(s.durs)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	st.Min = sorted[0]
	st.Max = sorted[len(sorted)-1]
	st.Median = sorted[len(sorted)/2]
	st.Mean = total / time.Duration(len(sorted))
	return st
}

// ThroughputMBs returns megabytes per second at the median run time.
func (st Stats) ThroughputMBs() float64 {
	if st.Median <= 0 {
		return 0
	}
	return float64(st.Bytes) / (1 << 20) / st.Median.Seconds()
}
