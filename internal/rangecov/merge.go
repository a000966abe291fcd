package rangecov

import "sort"

// MergeRangeTrees combines a set of trees that all share the same
// [Start, End) into one, summing their deltas and recursively merging
// their children. It returns nil for an empty input and trees[0] unchanged
// for a single-element input.
func MergeRangeTrees(arena *RangeTreeArena, trees []*RangeTree) *RangeTree {
	if len(trees) == 0 {
		return nil
	}
	if len(trees) == 1 {
		return trees[0]
	}

	start, end := trees[0].Start, trees[0].End
	var delta int64
	for _, t := range trees {
		delta += t.Delta
	}
	children := mergeRangeTreeChildren(arena, trees)
	return arena.Alloc(start, end, delta, children)
}

// parentChild pairs a child tree with the index of the parent (within the
// slice passed to mergeRangeTreeChildren) it was drained from, so nested
// and flat buckets can be kept per-parent through the sweep.
type parentChild struct {
	parentIndex int
	tree        *RangeTree
}

// startEvent groups every child across all parents that starts at the same
// offset.
type startEvent struct {
	offset uint32
	items  []parentChild
}

// startEventQueue is a FIFO of pre-computed startEvents plus a single
// mutable pending slot. A split's right half is re-injected into the
// pending slot at the split offset so it re-enters the sweep exactly where
// the region closed, without disturbing the rest of the queue's order.
type startEventQueue struct {
	queue   []startEvent
	pos     int
	pending *startEvent
}

func newStartEventQueue(parents []*RangeTree) *startEventQueue {
	byOffset := map[uint32][]parentChild{}
	var offsets []uint32
	for pi, parent := range parents {
		for _, child := range parent.Children {
			if _, seen := byOffset[child.Start]; !seen {
				offsets = append(offsets, child.Start)
			}
			byOffset[child.Start] = append(byOffset[child.Start], parentChild{parentIndex: pi, tree: child})
		}
		parent.Children = nil
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	queue := make([]startEvent, len(offsets))
	for i, off := range offsets {
		queue[i] = startEvent{offset: off, items: byOffset[off]}
	}
	return &startEventQueue{queue: queue}
}

func (q *startEventQueue) peekQueueOffset() (uint32, bool) {
	if q.pos < len(q.queue) {
		return q.queue[q.pos].offset, true
	}
	return 0, false
}

// setPendingOffset seeds an empty pending event at offset, to which
// pushPending can later append items.
func (q *startEventQueue) setPendingOffset(offset uint32) {
	q.pending = &startEvent{offset: offset}
}

// pushPending appends item to the pending event, if one is set.
func (q *startEventQueue) pushPending(item parentChild) {
	if q.pending != nil {
		q.pending.items = append(q.pending.items, item)
	}
}

// next returns the earliest event across the pending slot and the queue,
// delivering the pending event on its own when its offset precedes the
// queue's head (or the queue is exhausted), and merging the two when their
// offsets tie.
func (q *startEventQueue) next() (startEvent, bool) {
	hasPending := q.pending != nil && len(q.pending.items) > 0
	if !hasPending {
		if q.pos < len(q.queue) {
			ev := q.queue[q.pos]
			q.pos++
			return ev, true
		}
		return startEvent{}, false
	}

	pendingOffset := q.pending.offset
	queueOffset, hasQueue := q.peekQueueOffset()
	if !hasQueue || pendingOffset < queueOffset {
		ev := *q.pending
		q.pending = nil
		return ev, true
	}

	ev := q.queue[q.pos]
	q.pos++
	if pendingOffset == queueOffset {
		ev.items = append(ev.items, q.pending.items...)
		q.pending = nil
	}
	return ev, true
}

// mergeRangeTreeChildren is the sweep-line heart of the merge: it aligns
// the children of N parents sharing an interval by sweeping their start
// offsets, splitting any child that straddles a region boundary, and
// recursively merging every group of pointwise-aligned children.
func mergeRangeTreeChildren(arena *RangeTreeArena, parents []*RangeTree) []*RangeTree {
	n := len(parents)
	flat := make([][]*RangeTree, n)
	wrapped := make([][]*RangeTree, n)

	queue := newStartEventQueue(parents)
	nested := map[int][]*RangeTree{}
	var openRange *Range

	closeRegion := func(r Range) {
		for pi, items := range nested {
			wrapped[pi] = append(wrapped[pi], arena.Alloc(r.Start, r.End, 0, items))
		}
		nested = map[int][]*RangeTree{}
	}

	for {
		ev, ok := queue.next()
		if !ok {
			break
		}

		if openRange != nil && openRange.End <= ev.offset {
			closeRegion(*openRange)
			openRange = nil
		}

		if openRange != nil {
			for _, it := range ev.items {
				child := it.tree
				if child.End > openRange.End {
					left, right := child.Split(arena, openRange.End)
					queue.pushPending(parentChild{parentIndex: it.parentIndex, tree: right})
					child = left
				}
				nested[it.parentIndex] = append(nested[it.parentIndex], child)
			}
			continue
		}

		regionEnd := ev.offset + 1
		for _, it := range ev.items {
			if it.tree.End > regionEnd {
				regionEnd = it.tree.End
			}
		}
		for _, it := range ev.items {
			if it.tree.End == regionEnd {
				flat[it.parentIndex] = append(flat[it.parentIndex], it.tree)
				continue
			}
			nested[it.parentIndex] = append(nested[it.parentIndex], it.tree)
		}
		queue.setPendingOffset(regionEnd)
		openRange = &Range{Start: ev.offset, End: regionEnd}
	}
	if openRange != nil {
		closeRegion(*openRange)
	}

	forests := make([][]*RangeTree, n)
	for pi := 0; pi < n; pi++ {
		forests[pi] = mergeSortedChildLists(flat[pi], wrapped[pi])
	}

	return alignAndMergeForests(arena, forests)
}

// mergeSortedChildLists interleaves two child lists, each already sorted
// ascending by Start, into one sorted list.
func mergeSortedChildLists(a, b []*RangeTree) []*RangeTree {
	merged := make([]*RangeTree, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Start < b[j].Start {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// alignAndMergeForests walks every per-parent forest in lockstep over the
// union of their child boundaries. At each boundary, every forest whose
// head child starts there contributes it to a group that gets merged via
// MergeRangeTrees; the sweep guarantees these heads all share the same
// interval.
func alignAndMergeForests(arena *RangeTreeArena, forests [][]*RangeTree) []*RangeTree {
	events := collectChildBoundaries(forests)
	positions := make([]int, len(forests))

	var result []*RangeTree
	for _, e := range events {
		var group []*RangeTree
		for pi, forest := range forests {
			if positions[pi] < len(forest) && forest[positions[pi]].Start == e {
				group = append(group, forest[positions[pi]])
				positions[pi]++
			}
		}
		if merged := MergeRangeTrees(arena, group); merged != nil {
			result = append(result, merged)
		}
	}
	return result
}

func collectChildBoundaries(forests [][]*RangeTree) []uint32 {
	seen := map[uint32]struct{}{}
	for _, forest := range forests {
		for _, t := range forest {
			seen[t.Start] = struct{}{}
			seen[t.End] = struct{}{}
		}
	}
	events := make([]uint32, 0, len(seen))
	for e := range seen {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i] < events[j] })
	return events
}
