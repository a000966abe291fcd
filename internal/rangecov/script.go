package rangecov

import "sort"

// MergeScripts merges ScriptCov values that all describe the same script
// (i.e. share a URL — the caller is responsible for grouping by URL before
// calling this). It returns nil for an empty input. For a single input it
// normalizes and returns it unchanged in meaning. ScriptID and URL are
// otherwise taken from the first input; functions are grouped by root
// range across all inputs, merged per group, and emitted in ascending root
// Range order.
func MergeScripts(scripts []ScriptCov) (*ScriptCov, error) {
	if len(scripts) == 0 {
		return nil, nil
	}
	if len(scripts) == 1 {
		out := scripts[0]
		if err := deepNormalizeScriptCov(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	scriptID, url := scripts[0].ScriptID, scripts[0].URL
	for _, s := range scripts[1:] {
		if s.URL != url {
			return nil, invariantErr("MergeScripts", errIdentityMismatch("MergeScripts", url, s.URL))
		}
	}

	var order []Range
	groups := map[Range][]FunctionCov{}
	for _, s := range scripts {
		for _, f := range s.Functions {
			root, ok := f.RootRange()
			if !ok {
				return nil, invariantErr("MergeScripts", errEmptyFunctionRanges(f.FunctionName))
			}
			if _, seen := groups[root]; !seen {
				order = append(order, root)
			}
			groups[root] = append(groups[root], f)
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].Less(order[j]) })

	functions := make([]FunctionCov, 0, len(order))
	for _, root := range order {
		merged, err := MergeFunctions(groups[root])
		if err != nil {
			return nil, err
		}
		functions = append(functions, *merged)
	}

	return &ScriptCov{ScriptID: scriptID, URL: url, Functions: functions}, nil
}

// deepNormalizeScriptCov normalizes every function in s in place and
// re-sorts them by root Range.
func deepNormalizeScriptCov(s *ScriptCov) error {
	for i := range s.Functions {
		if err := normalizeFunctionCov(&s.Functions[i]); err != nil {
			return err
		}
	}
	sort.Slice(s.Functions, func(i, j int) bool {
		ri, _ := s.Functions[i].RootRange()
		rj, _ := s.Functions[j].RootRange()
		return ri.Less(rj)
	})
	return nil
}
