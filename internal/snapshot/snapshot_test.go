package snapshot

import (
	"testing"

	"github.com/rishav/bolt/internal/columnar"
	"github.com/rishav/bolt/internal/tick"
	"github.com/stretchr/testify/require"
)

func TestNewSlotPublishesEmptySnapshot(t *testing.T) {
	active := columnar.New()
	slot := NewSlot(active)

	snap := slot.Load()
	require.NotNil(t, snap)
	require.Same(t, active, snap.Active)
	require.Nil(t, snap.Sealed)
}

func TestPublishReplacesSnapshotAtomically(t *testing.T) {
	active := columnar.New()
	slot := NewSlot(active)

	sealed := columnar.New()
	sealed.Insert(tick.New(1, 1, 1))
	sealed.Sort(true)

	next := New(active, []*columnar.Buffer{sealed})
	slot.Publish(next)

	got := slot.Load()
	require.Same(t, next, got)
	require.Len(t, got.Sealed, 1)
}

func TestActiveBufferGrowsInPlaceAfterPublish(t *testing.T) {
	active := columnar.New()
	slot := NewSlot(active)

	active.Insert(tick.New(5, 1, 1))

	require.Equal(t, 1, slot.Load().Active.Len())
}
