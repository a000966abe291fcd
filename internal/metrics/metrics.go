// Package metrics centralizes Prometheus collector registration for merge
// operations. It exposes package-level collectors and update helpers so
// the core merge package stays import-cycle-free; nothing is registered
// with the default registerer until a consumer calls Register, so the
// merge core has zero global side effects unless a caller opts in.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var once sync.Once

var (
	// ProcessMergesTotal counts completed MergeProcesses calls.
	ProcessMergesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rangecov",
		Subsystem: "merge",
		Name:      "process_merges_total",
		Help:      "Total number of MergeProcesses calls that completed successfully.",
	})

	// ScriptMergesTotal counts completed per-URL MergeScripts calls.
	ScriptMergesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rangecov",
		Subsystem: "merge",
		Name:      "script_merges_total",
		Help:      "Total number of per-URL MergeScripts calls that completed successfully.",
	})

	// ScriptMergeDuration tracks how long a per-URL script merge takes.
	ScriptMergeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rangecov",
		Subsystem: "merge",
		Name:      "script_merge_duration_seconds",
		Help:      "Duration of a per-URL MergeScripts call.",
		Buckets:   prometheus.DefBuckets,
	})

	// ArenaGrowthsTotal counts chunk-growth events across all arenas.
	ArenaGrowthsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "rangecov",
		Subsystem: "arena",
		Name:      "growths_total",
		Help:      "Total number of times a range-tree arena grew past its initial capacity hint.",
	})
)

// Register exports all collectors to the default Prometheus registerer.
// Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			ProcessMergesTotal,
			ScriptMergesTotal,
			ScriptMergeDuration,
			ArenaGrowthsTotal,
		)
	})
}

// ObserveScriptMergeDuration records d against the script-merge histogram.
func ObserveScriptMergeDuration(d time.Duration) {
	ScriptMergeDuration.Observe(d.Seconds())
}

// IncProcessMerges increments ProcessMergesTotal by one.
func IncProcessMerges() { ProcessMergesTotal.Inc() }

// IncScriptMerges increments ScriptMergesTotal by one.
func IncScriptMerges() { ScriptMergesTotal.Inc() }

// AddArenaGrowths adds n arena growth events to ArenaGrowthsTotal.
func AddArenaGrowths(n int64) {
	if n > 0 {
		ArenaGrowthsTotal.Add(float64(n))
	}
}
