package isurf

import (
	"os"

	perf "github.com/hodgesds/perf-utils"
)

// PerfSample is a best-effort hardware-counter snapshot taken around
// the reconciler phase (spec §9 names this as useful operational
// telemetry, not a correctness requirement). Sampling failures are
// swallowed: perf_event_open is not available in every environment
// (containers, non-Linux, restricted ptrace_scope), and a missing
// sample must never fail a collective run.
type PerfSample struct {
	Available    bool
	CPUCycles    uint64
	Instructions uint64
}

// perfEvents is the fixed counter set sampled around Reconcile.
var perfEvents = []string{"cycles", "instructions"}

// SamplePerf starts a hardware counter group on the calling process,
// runs fn, and returns whatever counters it could read. Any error from
// perf_event_open or from reading the counters back yields a
// PerfSample with Available=false rather than propagating.
func SamplePerf(fn func()) PerfSample {
	prof, err := perf.NewHardwareProfiler(os.Getpid(), -1, perfEvents)
	if err != nil {
		fn()
		return PerfSample{}
	}
	if err := prof.Start(); err != nil {
		fn()
		return PerfSample{}
	}
	fn()
	defer prof.Stop()

	values, err := prof.Profile(nil)
	if err != nil {
		return PerfSample{}
	}
	sample := PerfSample{Available: true}
	if v, ok := values["cycles"]; ok {
		sample.CPUCycles = v.Value
	}
	if v, ok := values["instructions"]; ok {
		sample.Instructions = v.Value
	}
	return sample
}
