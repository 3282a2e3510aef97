// Copyright 2025 Certen Protocol
//
// Package telemetry records Prometheus metrics around the core's three
// expensive operations: leaf hashing, tree building, and proof assembly.
// Grounded on the teacher's prometheus/client_golang require, which no
// pkg/* file in the original tree actually imported; this module gives it
// its first real caller.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder observes core operations. NoopRecorder satisfies it without a
// Prometheus registry; Collector wraps real CounterVec/HistogramVec metrics
// for callers who want to export them.
type Recorder interface {
	ObserveLeafHash(family string, d time.Duration, err error)
	ObserveTreeBuild(leafCount int, d time.Duration, err error)
	ObserveAssembly(d time.Duration, err error)
}

// NoopRecorder discards every observation. It is the zero value callers
// get when they don't opt into metrics.
type NoopRecorder struct{}

func (NoopRecorder) ObserveLeafHash(string, time.Duration, error) {}
func (NoopRecorder) ObserveTreeBuild(int, time.Duration, error)   {}
func (NoopRecorder) ObserveAssembly(time.Duration, error)         {}

// Collector is a Recorder backed by real Prometheus metrics, registered
// under namespace.
type Collector struct {
	leafHashDuration  *prometheus.HistogramVec
	leafHashErrors    *prometheus.CounterVec
	treeBuildDuration *prometheus.HistogramVec
	treeBuildErrors   prometheus.Counter
	assemblyDuration  *prometheus.HistogramVec
	assemblyErrors    prometheus.Counter
}

// NewCollector constructs a Collector and registers its metrics against
// reg. Passing prometheus.NewRegistry() keeps it isolated for tests;
// passing prometheus.DefaultRegisterer wires it into the process's default
// metrics endpoint.
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		leafHashDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "leafhash",
			Name:      "duration_seconds",
			Help:      "Time spent hashing a single message into a leaf, by destination family.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family"}),
		leafHashErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "leafhash",
			Name:      "errors_total",
			Help:      "Leaf hash calls that returned an error, by destination family.",
		}, []string{"family"}),
		treeBuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "merkletree",
			Name:      "build_duration_seconds",
			Help:      "Time spent building a merkle tree, bucketed by leaf count range.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"leaf_count_bucket"}),
		treeBuildErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "merkletree",
			Name:      "build_errors_total",
			Help:      "Tree build calls that returned an error.",
		}),
		assemblyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "execreport",
			Name:      "assembly_duration_seconds",
			Help:      "Time spent assembling a manual execution proof.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		assemblyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "execreport",
			Name:      "assembly_errors_total",
			Help:      "Calculate calls that returned an error.",
		}),
	}

	collectors := []prometheus.Collector{
		c.leafHashDuration, c.leafHashErrors,
		c.treeBuildDuration, c.treeBuildErrors,
		c.assemblyDuration, c.assemblyErrors,
	}
	for _, coll := range collectors {
		if err := reg.Register(coll); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) ObserveLeafHash(family string, d time.Duration, err error) {
	c.leafHashDuration.WithLabelValues(family).Observe(d.Seconds())
	if err != nil {
		c.leafHashErrors.WithLabelValues(family).Inc()
	}
}

func (c *Collector) ObserveTreeBuild(leafCount int, d time.Duration, err error) {
	c.treeBuildDuration.WithLabelValues(leafCountBucket(leafCount)).Observe(d.Seconds())
	if err != nil {
		c.treeBuildErrors.Inc()
	}
}

func (c *Collector) ObserveAssembly(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		c.assemblyErrors.Inc()
	}
	c.assemblyDuration.WithLabelValues(result).Observe(d.Seconds())
}

// leafCountBucket buckets a leaf count into a coarse label so the
// duration_seconds histogram's cardinality doesn't grow with batch size.
func leafCountBucket(n int) string {
	switch {
	case n <= 1:
		return "1"
	case n <= 16:
		return "2-16"
	case n <= 256:
		return "17-256"
	case n <= 4096:
		return "257-4096"
	default:
		return "4097+"
	}
}
