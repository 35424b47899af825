// Package columnar implements the column-of-arrays storage used for both
// the active (mutable, append-only) buffer and sealed (immutable) segments
// of the tick store.
//
// Six parallel slices hold one column each (timestamps, symbol ids,
// exchange ids, prices, volumes, trade conditions). The range-query hot
// path only ever touches the timestamp column for its binary search,
// which is why the columns are kept separate instead of a single slice of
// structs: a lower_bound/upper_bound scan stays entirely inside one
// cache-friendly slice regardless of how wide the full record is.
package columnar

import (
	"sort"

	"github.com/rishav/bolt/internal/tick"
)

// Buffer is a columnar store of ticks. The zero value is not usable; use
// New or NewWithCapacity.
//
// Concurrency: a Buffer has no internal synchronization. Exactly one
// owner mutates it at a time (the ingest worker for the active buffer, a
// sealing task for the segment it is sorting); once sealed and published
// it is never mutated again.
type Buffer struct {
	timestamps []uint64
	symbolIDs  []uint32
	exchangeID []uint32
	prices     []float64
	volumes    []uint32
	conditions []tick.Condition

	count    int
	isSorted bool
}

// New returns an empty buffer with no pre-reserved capacity.
func New() *Buffer {
	return &Buffer{isSorted: true}
}

// NewWithCapacity returns an empty buffer with capacity pre-reserved for
// n records. Reserving capacity up front avoids slice reallocation while
// the active buffer is being read without a lock (see manager.Manager).
func NewWithCapacity(n int) *Buffer {
	return &Buffer{
		timestamps: make([]uint64, 0, n),
		symbolIDs:  make([]uint32, 0, n),
		exchangeID: make([]uint32, 0, n),
		prices:     make([]float64, 0, n),
		volumes:    make([]uint32, 0, n),
		conditions: make([]tick.Condition, 0, n),
		isSorted:   true,
	}
}

// Insert appends t to all six columns, updating the sortedness flag: it
// becomes false the first time an inserted timestamp is strictly less
// than the current last timestamp.
func (b *Buffer) Insert(t tick.Tick) {
	if b.count > 0 && b.isSorted && t.Timestamp < b.timestamps[b.count-1] {
		b.isSorted = false
	}

	b.timestamps = append(b.timestamps, t.Timestamp)
	b.symbolIDs = append(b.symbolIDs, t.SymbolID)
	b.exchangeID = append(b.exchangeID, t.ExchangeID)
	b.prices = append(b.prices, t.Price)
	b.volumes = append(b.volumes, t.Volume)
	b.conditions = append(b.conditions, t.Condition)
	b.count++
}

// Len returns the number of records currently stored.
func (b *Buffer) Len() int {
	return b.count
}

// IsSorted reports whether the buffer is known to be sorted ascending by
// timestamp. True for an empty buffer.
func (b *Buffer) IsSorted() bool {
	return b.isSorted
}

// Sort reorders all six columns by timestamp using a permutation derived
// from the timestamp column. An ascending sort sets the sortedness flag
// to true; a descending sort clears it unless every timestamp is equal
// (the flag only ever means "sorted ascending").
func (b *Buffer) Sort(ascending bool) {
	n := b.count
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	ts := b.timestamps
	sort.Slice(perm, func(i, j int) bool {
		if ascending {
			return ts[perm[i]] < ts[perm[j]]
		}
		return ts[perm[i]] > ts[perm[j]]
	})

	out := NewWithCapacity(n)
	for _, idx := range perm {
		out.timestamps = append(out.timestamps, b.timestamps[idx])
		out.symbolIDs = append(out.symbolIDs, b.symbolIDs[idx])
		out.exchangeID = append(out.exchangeID, b.exchangeID[idx])
		out.prices = append(out.prices, b.prices[idx])
		out.volumes = append(out.volumes, b.volumes[idx])
		out.conditions = append(out.conditions, b.conditions[idx])
	}
	out.count = n

	b.timestamps = out.timestamps
	b.symbolIDs = out.symbolIDs
	b.exchangeID = out.exchangeID
	b.prices = out.prices
	b.volumes = out.volumes
	b.conditions = out.conditions

	b.isSorted = ascending || n == 0 || b.timestamps[0] == b.timestamps[n-1]
}

// Copy returns an independent deep clone of b.
func (b *Buffer) Copy() *Buffer {
	out := &Buffer{
		timestamps: append([]uint64(nil), b.timestamps...),
		symbolIDs:  append([]uint32(nil), b.symbolIDs...),
		exchangeID: append([]uint32(nil), b.exchangeID...),
		prices:     append([]float64(nil), b.prices...),
		volumes:    append([]uint32(nil), b.volumes...),
		conditions: append([]tick.Condition(nil), b.conditions...),
		count:      b.count,
		isSorted:   b.isSorted,
	}
	return out
}

// Timestamps returns a read-only view of the timestamp column.
func (b *Buffer) Timestamps() []uint64 { return b.timestamps }

// At reconstructs the tick stored at column index i. The caller must
// ensure 0 <= i < Len(); this is the hot path so no bounds-checking
// beyond the slice's own is performed.
func (b *Buffer) At(i int) tick.Tick {
	return tick.Tick{
		Timestamp:  b.timestamps[i],
		SymbolID:   b.symbolIDs[i],
		ExchangeID: b.exchangeID[i],
		Price:      b.prices[i],
		Volume:     b.volumes[i],
		Condition:  b.conditions[i],
	}
}

// LowerBound returns the index of the first record whose timestamp is
// >= ts. Requires the buffer to be sorted ascending; undefined otherwise.
func (b *Buffer) LowerBound(ts uint64) int {
	return sort.Search(b.count, func(i int) bool {
		return b.timestamps[i] >= ts
	})
}

// UpperBound returns the index of the first record whose timestamp is
// > ts. Requires the buffer to be sorted ascending; undefined otherwise.
func (b *Buffer) UpperBound(ts uint64) int {
	return sort.Search(b.count, func(i int) bool {
		return b.timestamps[i] > ts
	})
}
