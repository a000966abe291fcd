package rangecov

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeFunctions_Empty(t *testing.T) {
	got, err := MergeFunctions(nil)
	if err != nil || got != nil {
		t.Fatalf("got (%v, %v), want (nil, nil)", got, err)
	}
}

func TestMergeFunctions_IdentityMismatch(t *testing.T) {
	_, err := MergeFunctions([]FunctionCov{
		{FunctionName: "f", Ranges: []RangeCov{rc(0, 10, 1)}},
		{FunctionName: "f", Ranges: []RangeCov{rc(0, 9, 1)}},
	})
	assertInvariantViolation(t, err)
}

func TestMergeFunctions_EmptyRangesIsInvariantViolation(t *testing.T) {
	_, err := MergeFunctions([]FunctionCov{
		{FunctionName: "f", Ranges: nil},
		{FunctionName: "f", Ranges: []RangeCov{rc(0, 9, 1)}},
	})
	assertInvariantViolation(t, err)
}

func TestMergeFunctions_IsBlockCoverageRecomputed(t *testing.T) {
	// Two never-entered functions merge to a single zero-count range, so
	// IsBlockCoverage flips false even though both inputs set it true.
	funcs := []FunctionCov{
		{FunctionName: "f", IsBlockCoverage: true, Ranges: []RangeCov{rc(0, 10, 0)}},
		{FunctionName: "f", IsBlockCoverage: true, Ranges: []RangeCov{rc(0, 10, 0)}},
	}
	got, err := MergeFunctions(funcs)
	if err != nil {
		t.Fatalf("MergeFunctions: %v", err)
	}
	if got.IsBlockCoverage {
		t.Errorf("expected IsBlockCoverage=false for a single zero-count range")
	}
	want := []RangeCov{rc(0, 10, 0)}
	if diff := cmp.Diff(want, got.Ranges); diff != "" {
		t.Errorf("unexpected ranges (-want +got):\n%s", diff)
	}
}
