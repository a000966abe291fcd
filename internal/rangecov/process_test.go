package rangecov

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func proc(scripts ...ScriptCov) ProcessCov { return ProcessCov{Result: scripts} }

func script(url string, funcs ...FunctionCov) ScriptCov {
	return ScriptCov{ScriptID: "0", URL: url, Functions: funcs}
}

func TestMergeProcesses_GroupsByURLAndRenumbers(t *testing.T) {
	inputs := []ProcessCov{
		proc(
			script("/b.js", fn("g", rc(0, 10, 1))),
			script("/a.js", fn("f", rc(0, 10, 1))),
		),
		proc(
			script("/a.js", fn("f", rc(0, 10, 2))),
		),
	}

	got, err := MergeProcesses(context.Background(), inputs)
	if err != nil {
		t.Fatalf("MergeProcesses: %v", err)
	}
	want := proc(
		ScriptCov{ScriptID: "0", URL: "/a.js", Functions: []FunctionCov{fn("f", rc(0, 10, 3))}},
		ScriptCov{ScriptID: "1", URL: "/b.js", Functions: []FunctionCov{fn("g", rc(0, 10, 1))}},
	)
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

// A malformed URL group (one of its functions has no ranges, so it has no
// root range to be grouped by) surfaces as a *MergeError rather than
// silently dropping that URL's scripts.
func TestMergeProcesses_PropagatesPerURLErrors(t *testing.T) {
	bad := FunctionCov{FunctionName: "broken", Ranges: nil}
	inputs := []ProcessCov{
		proc(script("/bad.js", bad)),
		proc(script("/bad.js", fn("other", rc(0, 10, 1)))),
	}

	_, err := MergeProcesses(context.Background(), inputs)
	if err == nil {
		t.Fatalf("expected an error")
	}
	var merr *MergeError
	if !errors.As(err, &merr) {
		t.Fatalf("expected a *MergeError to be present in the chain, got %v", err)
	}
}

func TestMergeProcesses_RespectsMaxWorkers(t *testing.T) {
	inputs := []ProcessCov{
		proc(script("/a.js", fn("f", rc(0, 10, 1))), script("/b.js", fn("f", rc(0, 10, 1)))),
		proc(script("/a.js", fn("f", rc(0, 10, 2))), script("/b.js", fn("f", rc(0, 10, 2)))),
	}
	got, err := MergeProcesses(context.Background(), inputs, WithMaxWorkers(1))
	if err != nil {
		t.Fatalf("MergeProcesses: %v", err)
	}
	if len(got.Result) != 2 {
		t.Fatalf("expected 2 merged scripts, got %d", len(got.Result))
	}
}

func TestMergeProcesses_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inputs := []ProcessCov{
		proc(script("/a.js", fn("f", rc(0, 10, 1)))),
		proc(script("/a.js", fn("f", rc(0, 10, 2)))),
	}
	_, err := MergeProcesses(ctx, inputs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
