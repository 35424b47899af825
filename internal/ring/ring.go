// Package ring implements the bounded lock-free queue that decouples
// producers (callers of the database facade's Insert) from the single
// ingest worker.
//
// The design follows the same CAS-reserve-then-write pattern
// agilira-lethe's MPSC ring buffer uses for its own producer/consumer
// hand-off: a producer reserves a slot with a compare-and-swap on the
// writer cursor, then writes the payload into that slot. The cursor
// advance is what makes the slot visible to the consumer, not a
// per-slot ready flag — which means a second producer that reserves the
// following slot could in principle observe a still-unwritten
// predecessor. The ring is correct for single-producer/single-consumer;
// multi-producer is best-effort (see package doc for Insert).
package ring

import (
	"sync/atomic"

	"github.com/rishav/bolt/internal/tick"
)

// DefaultCapacity is the default number of slots in the ring.
const DefaultCapacity = 64000

// Ring is a fixed-capacity circular queue of ticks with monotonically
// increasing writer/reader cursors. Occupancy is writer-reader and is
// always within [0, capacity].
type Ring struct {
	capacity uint64
	slots    []tick.Tick

	writer atomic.Uint64
	reader atomic.Uint64
}

// New creates a ring with the given capacity. A capacity of 0 uses
// DefaultCapacity.
func New(capacity uint64) *Ring {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		capacity: capacity,
		slots:    make([]tick.Tick, capacity),
	}
}

// Capacity returns the ring's fixed slot count.
func (r *Ring) Capacity() uint64 {
	return r.capacity
}

// Insert attempts to reserve the next writer slot via compare-and-swap.
// On success it writes the tick into the slot and returns true. Returns
// false when the ring is full (writer - reader == capacity).
//
// Insert is safe to call from multiple goroutines (multi-producer), but
// per the package doc the write-after-reserve ordering is only proven
// correct for a single producer; concurrent producers are best-effort.
func (r *Ring) Insert(t tick.Tick) bool {
	for {
		writer := r.writer.Load()
		reader := r.reader.Load()

		if writer-reader == r.capacity {
			return false
		}

		if r.writer.CompareAndSwap(writer, writer+1) {
			r.slots[writer%r.capacity] = t
			return true
		}
	}
}

// Read removes and returns the next tick for the single consumer. The
// second return value is false if the ring was empty.
func (r *Ring) Read() (tick.Tick, bool) {
	writer := r.writer.Load()
	reader := r.reader.Load()

	if writer == reader {
		return tick.Tick{}, false
	}

	t := r.slots[reader%r.capacity]
	r.reader.Add(1)
	return t, true
}

// IsEmpty is an advisory snapshot of the two cursors.
func (r *Ring) IsEmpty() bool {
	return r.writer.Load() == r.reader.Load()
}

// IsFull is an advisory snapshot of the two cursors.
func (r *Ring) IsFull() bool {
	return r.writer.Load()-r.reader.Load() >= r.capacity
}
