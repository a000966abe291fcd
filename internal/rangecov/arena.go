package rangecov

import "go.uber.org/atomic"

// defaultChunkSize is the smallest chunk an arena allocates, used when a
// caller's capacity hint is tiny (a function with one or two ranges
// shouldn't cause chunk thrashing during splits).
const defaultChunkSize = 64

// RangeTreeArena is a growable bump allocator for RangeTree nodes. A single
// merge call allocates many transient nodes (splits, wrapper nodes, fused
// nodes); placing them in chunked, fixed-capacity slices means every
// handed-out *RangeTree stays valid for the arena's lifetime without the
// allocator ever needing to move or reference-count a node. The arena is
// not safe for concurrent use by multiple goroutines merging into it at
// once — each merge owns its own arena — but its counters use atomics so a
// metrics collector on another goroutine can read Growths/Allocated while
// a merge is in flight.
type RangeTreeArena struct {
	chunkSize int
	chunks    [][]RangeTree

	growths   atomic.Int64
	allocated atomic.Int64
}

// NewRangeTreeArena creates an arena whose first chunk is sized to fit
// capacityHint nodes without growing. capacityHint is typically the
// combined range count of the function/script/process being merged; splits
// performed during the sweep may still force the arena to grow.
func NewRangeTreeArena(capacityHint int) *RangeTreeArena {
	size := defaultChunkSize
	if capacityHint > size {
		size = capacityHint
	}
	a := &RangeTreeArena{chunkSize: size}
	a.chunks = [][]RangeTree{make([]RangeTree, 0, size)}
	return a
}

// Alloc places a new RangeTree in the arena and returns a stable pointer to
// it.
func (a *RangeTreeArena) Alloc(start, end uint32, delta int64, children []*RangeTree) *RangeTree {
	idx := len(a.chunks) - 1
	if len(a.chunks[idx]) == cap(a.chunks[idx]) {
		a.chunks = append(a.chunks, make([]RangeTree, 0, a.chunkSize))
		a.growths.Inc()
		idx = len(a.chunks) - 1
	}
	a.chunks[idx] = append(a.chunks[idx], RangeTree{Start: start, End: end, Delta: delta, Children: children})
	a.allocated.Inc()
	return &a.chunks[idx][len(a.chunks[idx])-1]
}

// Growths reports how many times the arena had to allocate a new chunk
// beyond its initial capacity hint.
func (a *RangeTreeArena) Growths() int64 { return a.growths.Load() }

// Allocated reports the total number of RangeTree nodes placed in the
// arena over its lifetime, including transient split and wrapper nodes.
func (a *RangeTreeArena) Allocated() int64 { return a.allocated.Load() }
