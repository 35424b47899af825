package bolt

import (
	"testing"

	"github.com/rishav/bolt/internal/tick"
	"github.com/stretchr/testify/require"
)

func TestS1BasicInsertAndRange(t *testing.T) {
	db := New()
	defer db.Close()

	db.Insert(tick.New(1000, 150.25, 100))
	db.Insert(tick.New(1001, 200.50, 50))
	db.Flush()

	got := db.GetRange(1000, 1001)
	require.Len(t, got, 2)
	require.Equal(t, uint64(1000), got[0].Timestamp)
	require.Equal(t, uint64(1001), got[1].Timestamp)
	require.Equal(t, 2, db.Size())
}

func TestS2Filter(t *testing.T) {
	db := New()
	defer db.Close()

	db.InsertBatch([]tick.Tick{
		{Timestamp: 1000, Price: 150.10, Volume: 100, SymbolID: 1},
		{Timestamp: 1002, Price: 200.00, Volume: 50, SymbolID: 2},
		{Timestamp: 1005, Price: 150.11, Volume: 120, SymbolID: 1},
	})
	db.Flush()

	sym1 := func(tk tick.Tick) bool { return tk.SymbolID == 1 }
	got := db.GetRange(1000, 2000, sym1)
	require.Len(t, got, 2)
}

func TestS3Aggregate(t *testing.T) {
	db := New()
	defer db.Close()

	db.InsertBatch([]tick.Tick{
		tick.New(100, 100.0, 10),
		tick.New(101, 150.0, 20),
		tick.New(102, 120.0, 30),
	})
	db.Flush()

	got := db.Aggregate(100, 102)
	require.Equal(t, uint64(3), got.Count)
	require.Equal(t, uint64(60), got.TotalVolume)
	require.Equal(t, 150.0, got.MaxPrice)
	require.Equal(t, 100.0, got.MinPrice)
	require.InDelta(t, (100.0+150.0+120.0)/3, got.AvgPrice, 1e-9)
	require.InDelta(t, (100.0*10+150.0*20+120.0*30)/60.0, got.VWAP, 1e-9)
}

func TestS4MergeAcrossSealedSegments(t *testing.T) {
	db := New(WithMaxSealedBufferSize(5))
	defer db.Close()

	db.InsertBatch(tsTicks(100, 110, 120, 130, 140))
	db.Flush()
	db.InsertBatch(tsTicks(20, 30, 40, 50, 60))
	db.Flush()
	db.InsertBatch(tsTicks(125, 15, 80, 200, 95))
	db.Flush()

	got := db.GetRange(0, 150)
	want := []uint64{15, 20, 30, 40, 50, 60, 80, 95, 100, 110, 120, 125, 130, 140}
	require.Equal(t, len(want), len(got))
	for i, ts := range want {
		require.Equal(t, ts, got[i].Timestamp)
	}
}

func TestS5RangeSubwindow(t *testing.T) {
	db := New(WithMaxSealedBufferSize(5))
	defer db.Close()

	db.InsertBatch(tsTicks(100, 110, 120, 130, 140))
	db.Flush()
	db.InsertBatch(tsTicks(20, 30, 40, 50, 60))
	db.Flush()
	db.InsertBatch(tsTicks(125, 15, 80, 200, 95))
	db.Flush()

	got := db.GetRange(55, 115)
	want := []uint64{60, 80, 95, 100, 110}
	require.Equal(t, len(want), len(got))
	for i, ts := range want {
		require.Equal(t, ts, got[i].Timestamp)
	}
}

func TestS6ZeroVolumeVWAP(t *testing.T) {
	db := New()
	defer db.Close()

	db.InsertBatch([]tick.Tick{
		tick.New(103, 110.0, 60),
		tick.New(104, 130.0, 0),
	})
	db.Flush()

	got := db.Aggregate(103, 104)
	require.Equal(t, uint64(2), got.Count)
	require.InDelta(t, 110.0, got.VWAP, 1e-9)
}

func TestInvalidRangeReturnsEmpty(t *testing.T) {
	db := New()
	defer db.Close()

	db.Insert(tick.New(1, 1, 1))
	db.Flush()

	require.Empty(t, db.GetRange(10, 5))
	require.Equal(t, 0, int(db.Aggregate(10, 5).Count))
}

func TestFlushIsIdempotent(t *testing.T) {
	db := New()
	defer db.Close()

	db.Insert(tick.New(1, 1, 1))
	db.Flush()
	before := db.GetRange(0, 100)

	db.Flush()
	after := db.GetRange(0, 100)

	require.Equal(t, before, after)

	// Database must remain usable after a second flush.
	db.Insert(tick.New(2, 2, 2))
	db.Flush()
	require.Len(t, db.GetRange(0, 100), 2)
}

func tsTicks(timestamps ...uint64) []tick.Tick {
	out := make([]tick.Tick, len(timestamps))
	for i, ts := range timestamps {
		out[i] = tick.New(ts, float64(ts), 1)
	}
	return out
}
