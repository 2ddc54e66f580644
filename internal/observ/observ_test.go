package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 1 || rep.Phases[0].Name != "discover" || rep.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected report %+v", rep)
	}
	if s := tm.Summary(); !strings.Contains(s, "discover") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary %q", s)
	}
}

func TestSamplesStats(t *testing.T) {
	s := NewSamples("a.js", 1<<20, 4)
	for _, ms := range []int{4, 1, 3, 2} {
		s.Add(time.Duration(ms) * time.Millisecond)
	}
	st := s.Stats()
	if st.Runs != 4 || st.Min != time.Millisecond || st.Max != 4*time.Millisecond {
		t.Fatalf("unexpected stats %+v", st)
	}
	if st.Median != 3*time.Millisecond {
		t.Fatalf("median: got %s", st.Median)
	}
	if st.Mean != 2500*time.Microsecond {
		t.Fatalf("mean: got %s", st.Mean)
	}
	if got := st.ThroughputMBs(); got < 333 || got > 334 {
		t.Fatalf("throughput: got %f", got)
	}
}

func TestEmptySamples(t *testing.T) {
	st := NewSamples("x", 10, 0).Stats()
	if st.Runs != 0 || st.ThroughputMBs() != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}
