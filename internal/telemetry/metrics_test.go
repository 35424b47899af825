package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.TicksIngested.Inc()
	m.RingDrops.Inc()
	m.SegmentsSealed.Inc()
	m.SegmentsEvicted.Inc()
	m.ActiveBufferSize.Set(42)
	m.SealedChainLength.Set(3)
	m.QueryDuration.WithLabelValues("get_range").Observe(0.001)
	m.PoolTaskFailures.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(families), 8)
}

func TestNewNopMetricsIsUsable(t *testing.T) {
	m := NewNopMetrics()
	require.NotPanics(t, func() {
		m.TicksIngested.Inc()
		m.ActiveBufferSize.Set(1)
	})
}
