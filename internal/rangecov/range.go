package rangecov

import "fmt"

// Range is a half-open interval [Start, End) of non-negative byte offsets.
// A 32-bit offset is sufficient for any realistic source file.
type Range struct {
	Start uint32
	End   uint32
}

// Less orders ranges ascending by Start, then descending by End, so that
// any range containing another sorts before it and identical-root groups
// land adjacent to one another.
func (r Range) Less(o Range) bool {
	if r.Start != o.Start {
		return r.Start < o.Start
	}
	return r.End > o.End
}

// Contains reports whether r strictly or non-strictly contains o (o's
// interval lies entirely within r's).
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

func rangeString(r Range) string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
