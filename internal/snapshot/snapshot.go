// Package snapshot implements the atomically published, immutable
// (active buffer, sealed chain) pair that readers consult for range and
// aggregate queries while the ingest worker continues to mutate the live
// active buffer.
//
// The slot itself is a generic atomic.Pointer[Snapshot]: publish is a
// release store, Load an acquire load, matching the acquire/release
// pairing original_source/src/buffer_manager.cpp documents around its
// snapshot slot. No reader ever acquires a mutex to observe a snapshot.
package snapshot

import (
	"sync/atomic"

	"github.com/rishav/bolt/internal/columnar"
)

// Snapshot is an immutable pair (active buffer handle, sealed chain
// handle). The active buffer handle may still be mutated in place by the
// ingest worker after this snapshot is published; the sealed chain slice
// itself is never mutated once referenced by a published snapshot (a
// chain update publishes a fresh copy of the slice, never appends in
// place).
type Snapshot struct {
	Active *columnar.Buffer
	Sealed []*columnar.Buffer
}

// New builds a snapshot from the given active buffer handle and sealed
// chain handle. The sealed slice is not copied; callers must treat it as
// immutable from this point on.
func New(active *columnar.Buffer, sealed []*columnar.Buffer) *Snapshot {
	return &Snapshot{Active: active, Sealed: sealed}
}

// Slot is an atomically published snapshot slot. The zero value holds no
// snapshot; use NewSlot to seed one.
type Slot struct {
	ptr atomic.Pointer[Snapshot]
}

// NewSlot returns a slot pre-published with an empty snapshot over the
// given initial active buffer and no sealed segments.
func NewSlot(initialActive *columnar.Buffer) *Slot {
	s := &Slot{}
	s.Publish(New(initialActive, nil))
	return s
}

// Publish installs snap as the current snapshot via a release store.
func (s *Slot) Publish(snap *Snapshot) {
	s.ptr.Store(snap)
}

// Load returns the current snapshot via an acquire load. Never nil once
// the slot has been published at least once.
func (s *Slot) Load() *Snapshot {
	return s.ptr.Load()
}
