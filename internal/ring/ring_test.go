package ring

import (
	"testing"

	"github.com/rishav/bolt/internal/tick"
	"github.com/stretchr/testify/require"
)

func TestRoundTripSingleProducerSingleConsumer(t *testing.T) {
	r := New(16)

	var pushed []tick.Tick
	for i := uint64(0); i < 10; i++ {
		tk := tick.New(i, float64(i), uint32(i))
		pushed = append(pushed, tk)
		require.True(t, r.Insert(tk))
	}

	var drained []tick.Tick
	for {
		tk, ok := r.Read()
		if !ok {
			break
		}
		drained = append(drained, tk)
	}

	require.Equal(t, len(pushed), len(drained))
	for i := range pushed {
		require.True(t, pushed[i].Equal(drained[i]))
	}
}

func TestCapacityFullAfterExactlyCapacityInserts(t *testing.T) {
	const capacity = 8
	r := New(capacity)

	for i := uint64(0); i < capacity; i++ {
		require.True(t, r.Insert(tick.New(i, 1, 1)))
	}

	require.True(t, r.IsFull())
	require.False(t, r.Insert(tick.New(999, 1, 1)))
}

func TestInsertSucceedsAfterRead(t *testing.T) {
	r := New(4)
	for i := uint64(0); i < 4; i++ {
		require.True(t, r.Insert(tick.New(i, 1, 1)))
	}
	require.False(t, r.Insert(tick.New(5, 1, 1)))

	_, ok := r.Read()
	require.True(t, ok)

	require.True(t, r.Insert(tick.New(6, 1, 1)))
}

func TestReadOnEmptyReturnsFalse(t *testing.T) {
	r := New(4)
	require.True(t, r.IsEmpty())

	_, ok := r.Read()
	require.False(t, ok)
}

func TestDefaultCapacityUsedWhenZero(t *testing.T) {
	r := New(0)
	require.Equal(t, uint64(DefaultCapacity), r.Capacity())
}
