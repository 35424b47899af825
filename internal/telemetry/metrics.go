// Package telemetry wraps the Prometheus collectors the bolt store
// exposes alongside its core data path. Instrumentation here is additive:
// it changes no return values on the public facade and backs no
// correctness invariant, only observability.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the set of collectors registered once per database
// instance. Use NewMetrics to back it with a real registry, or
// NewNopMetrics when the caller does not want metrics collected.
type Metrics struct {
	TicksIngested     prometheus.Counter
	RingDrops         prometheus.Counter
	SegmentsSealed    prometheus.Counter
	SegmentsEvicted   prometheus.Counter
	ActiveBufferSize  prometheus.Gauge
	SealedChainLength prometheus.Gauge
	QueryDuration     *prometheus.HistogramVec
	PoolTaskFailures  prometheus.Counter
}

// NewMetrics builds a Metrics registered against reg. Passing a fresh
// prometheus.NewRegistry() is the normal case in tests; passing
// prometheus.DefaultRegisterer wires into the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promAutoFactory{reg: reg}

	return &Metrics{
		TicksIngested: factory.counter(prometheus.CounterOpts{
			Name: "bolt_ticks_ingested_total",
			Help: "Total ticks accepted into the ring.",
		}),
		RingDrops: factory.counter(prometheus.CounterOpts{
			Name: "bolt_ring_drops_total",
			Help: "Total inserts rejected because the ring was full.",
		}),
		SegmentsSealed: factory.counter(prometheus.CounterOpts{
			Name: "bolt_segments_sealed_total",
			Help: "Total active buffers sealed into the chain.",
		}),
		SegmentsEvicted: factory.counter(prometheus.CounterOpts{
			Name: "bolt_segments_evicted_total",
			Help: "Total sealed buffers evicted from the chain head.",
		}),
		ActiveBufferSize: factory.gauge(prometheus.GaugeOpts{
			Name: "bolt_active_buffer_size",
			Help: "Record count of the current active buffer.",
		}),
		SealedChainLength: factory.gauge(prometheus.GaugeOpts{
			Name: "bolt_sealed_chain_length",
			Help: "Number of segments in the sealed chain.",
		}),
		QueryDuration: factory.histogramVec(prometheus.HistogramOpts{
			Name:    "bolt_query_duration_seconds",
			Help:    "Latency of get_range/aggregate queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		PoolTaskFailures: factory.counter(prometheus.CounterOpts{
			Name: "bolt_pool_task_failures_total",
			Help: "Total worker pool tasks that panicked.",
		}),
	}
}

// NewNopMetrics returns a Metrics backed by an unregistered, throwaway
// registry: every collector works but nothing is ever scraped. Used by
// callers (and tests) that want the facade's metrics calls to be
// harmless no-ops.
func NewNopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

// promAutoFactory mirrors the promauto.Factory pattern (construct, then
// MustRegister) without depending on the promauto subpackage, so the
// constructors above read the same way the ecosystem idiom does.
type promAutoFactory struct {
	reg prometheus.Registerer
}

func (f promAutoFactory) counter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	f.reg.MustRegister(c)
	return c
}

func (f promAutoFactory) gauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	g := prometheus.NewGauge(opts)
	f.reg.MustRegister(g)
	return g
}

func (f promAutoFactory) histogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	f.reg.MustRegister(h)
	return h
}
