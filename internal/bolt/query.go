package bolt

import (
	"sort"

	"github.com/rishav/bolt/internal/columnar"
	"github.com/rishav/bolt/internal/snapshot"
	"github.com/rishav/bolt/internal/tick"
)

// collected holds the two partial results gathered from a snapshot, plus
// whether each is internally sorted ascending by timestamp — the input
// the merge step needs to decide between a two-way merge and a full sort.
type collected struct {
	sealed       []tick.Tick
	sealedSorted bool
	active       []tick.Tick
	activeSorted bool
}

// collect walks the sealed chain then the active buffer of snap,
// gathering every tick whose timestamp falls in [start, end] and that
// filter accepts. Grounded on the range-query algorithm in
// original_source/src/database.cpp: sealed segments are skipped
// entirely when their [first,last] timestamp span misses the query
// window, otherwise bounded via lower_bound/upper_bound; the active
// buffer is a once-counted linear scan.
func collect(snap *snapshot.Snapshot, start, end uint64, filter tick.Filter) collected {
	var out collected
	out.sealedSorted = true

	var prevLast uint64
	haveContributed := false

	for _, buf := range snap.Sealed {
		n := buf.Len()
		if n == 0 {
			continue
		}
		ts := buf.Timestamps()
		first, last := ts[0], ts[n-1]
		if first > end || last < start {
			continue
		}

		lo := buf.LowerBound(start)
		hi := buf.UpperBound(end)
		if lo >= hi {
			continue
		}

		if haveContributed && ts[lo] < prevLast {
			out.sealedSorted = false
		}
		for i := lo; i < hi; i++ {
			t := buf.At(i)
			if filter.Accept(t) {
				out.sealed = append(out.sealed, t)
			}
		}
		prevLast = ts[hi-1]
		haveContributed = true
	}

	out.activeSorted = snap.Active.IsSorted()
	out.active = collectActive(snap.Active, start, end, filter)

	return out
}

func collectActive(buf *columnar.Buffer, start, end uint64, filter tick.Filter) []tick.Tick {
	count := buf.Len()
	ts := buf.Timestamps()

	var out []tick.Tick
	for i := 0; i < count; i++ {
		if ts[i] < start || ts[i] > end {
			continue
		}
		t := buf.At(i)
		if filter.Accept(t) {
			out = append(out, t)
		}
	}
	return out
}

// merge combines c's two partial results into a single ascending,
// timestamp-sorted sequence. When both partials are already sorted it
// performs a two-way merge; otherwise it concatenates and sorts.
func merge(c collected) []tick.Tick {
	if c.sealedSorted && c.activeSorted {
		return twoWayMerge(c.sealed, c.active)
	}

	out := make([]tick.Tick, 0, len(c.sealed)+len(c.active))
	out = append(out, c.sealed...)
	out = append(out, c.active...)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

func twoWayMerge(a, b []tick.Tick) []tick.Tick {
	out := make([]tick.Tick, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Timestamp <= b[j].Timestamp {
			out = append(out, a[i])
			i++
		} else {
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
