package manager

import (
	"testing"

	"github.com/rishav/bolt/internal/tick"
	"github.com/rishav/bolt/internal/workerpool"
	"github.com/stretchr/testify/require"
)

func insertN(m *Manager, n int, startTS uint64) {
	for i := 0; i < n; i++ {
		m.Insert(tick.New(startTS+uint64(i), float64(i), 1))
	}
}

func TestSealingProducesExactSealedAndActiveCounts(t *testing.T) {
	const bufSize = 10
	pool := workerpool.NewSize(3)
	defer pool.Shutdown()

	m := New(pool, WithMaxSealedBufferSize(bufSize), WithMaxSealed(100))

	k, r := 3, 4
	insertN(m, k*bufSize+r, 0)

	pool.Shutdown() // drains all sealing tasks
	pool.Restart()

	require.Equal(t, k, m.SealedChainLen())
	require.Equal(t, r, m.active.Len())

	snap := m.State()
	require.Len(t, snap.Sealed, k)
	require.Equal(t, r, snap.Active.Len())
}

func TestChainEvictionBoundedAtMaxSealed(t *testing.T) {
	const bufSize = 5
	const maxSealed = 4
	pool := workerpool.NewSize(3)
	defer pool.Shutdown()

	m := New(pool, WithMaxSealedBufferSize(bufSize), WithMaxSealed(maxSealed))

	insertN(m, bufSize*(maxSealed+3), 0)

	pool.Shutdown()
	pool.Restart()

	require.Equal(t, maxSealed, m.SealedChainLen())
	require.Len(t, m.State().Sealed, maxSealed)
}

func TestSealedSegmentsAreSortedAscending(t *testing.T) {
	const bufSize = 5
	pool := workerpool.NewSize(3)
	defer pool.Shutdown()

	m := New(pool, WithMaxSealedBufferSize(bufSize))

	for _, ts := range []uint64{140, 100, 130, 110, 120} {
		m.Insert(tick.New(ts, 1, 1))
	}

	pool.Shutdown()
	pool.Restart()

	snap := m.State()
	require.Len(t, snap.Sealed, 1)
	require.True(t, snap.Sealed[0].IsSorted())
	require.Equal(t, []uint64{100, 110, 120, 130, 140}, snap.Sealed[0].Timestamps())
}

func TestActiveBufferVisibleThroughSnapshotBeforeAnySeal(t *testing.T) {
	pool := workerpool.NewSize(3)
	defer pool.Shutdown()

	m := New(pool, WithMaxSealedBufferSize(100))
	m.Insert(tick.New(1, 2, 3))

	snap := m.State()
	require.Equal(t, 1, snap.Active.Len())
	require.Empty(t, snap.Sealed)
}
