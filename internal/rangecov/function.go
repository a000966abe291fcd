package rangecov

import "github.com/rscarson/v8-coverage/internal/metrics"

// MergeFunctions merges FunctionCov values that all describe the same
// function (i.e. share a root range). It returns nil for an empty input.
// For a single input it normalizes and returns it unchanged in meaning,
// without building a tree merge; FunctionName is otherwise taken from the
// first input, and IsBlockCoverage is recomputed from the merged output's
// shape rather than propagated from any input.
func MergeFunctions(funcs []FunctionCov) (*FunctionCov, error) {
	if len(funcs) == 0 {
		return nil, nil
	}
	if len(funcs) == 1 {
		out := funcs[0]
		if err := normalizeFunctionCov(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	name := funcs[0].FunctionName
	root, ok := funcs[0].RootRange()
	if !ok {
		return nil, invariantErr("MergeFunctions", errEmptyFunctionRanges(name))
	}
	capacity := 0
	for _, f := range funcs {
		capacity += len(f.Ranges)
		fr, ok := f.RootRange()
		if !ok {
			return nil, invariantErr("MergeFunctions", errEmptyFunctionRanges(f.FunctionName))
		}
		if fr != root {
			return nil, invariantErr("MergeFunctions", errIdentityMismatch("MergeFunctions", rangeString(root), rangeString(fr)))
		}
	}
	arena := NewRangeTreeArena(capacity)

	trees := make([]*RangeTree, 0, len(funcs))
	for _, f := range funcs {
		tree, err := FromSortedRanges(arena, f.Ranges)
		if err != nil {
			return nil, err
		}
		if tree != nil {
			trees = append(trees, tree)
		}
	}

	merged := MergeRangeTrees(arena, trees)
	if merged == nil {
		return nil, nil
	}
	merged = arena.Normalize(merged)
	ranges := merged.ToRanges()
	metrics.AddArenaGrowths(arena.Growths())

	return &FunctionCov{
		FunctionName:    name,
		Ranges:          ranges,
		IsBlockCoverage: computeIsBlockCoverage(ranges),
	}, nil
}

// computeIsBlockCoverage implements the output-shape rule: a function
// carries no block detail iff its flattened ranges are exactly one range
// with a zero count.
func computeIsBlockCoverage(ranges []RangeCov) bool {
	return !(len(ranges) == 1 && ranges[0].Count == 0)
}

// normalizeFunctionCov rebuilds f's range tree, normalizes it, and
// reflattens it in place, recomputing IsBlockCoverage from the result.
func normalizeFunctionCov(f *FunctionCov) error {
	if len(f.Ranges) == 0 {
		return nil
	}
	ranges := append([]RangeCov(nil), f.Ranges...)
	sortRangeCovs(ranges)

	arena := NewRangeTreeArena(len(ranges))
	tree, err := FromSortedRanges(arena, ranges)
	if err != nil {
		return err
	}
	if tree == nil {
		return nil
	}
	tree = arena.Normalize(tree)
	f.Ranges = tree.ToRanges()
	f.IsBlockCoverage = computeIsBlockCoverage(f.Ranges)
	return nil
}
