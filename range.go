package zio

import (
	"fmt"
)

// Range is the half-open index range [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Span returns [lo, hi).
func Span(lo, hi int) Range {
	return Range{Lo: lo, Hi: hi}
}

// Through returns the closed range [lo, last], i.e. [lo, last+1).
func Through(lo, last int) Range {
	return Range{Lo: lo, Hi: last + 1}
}

func (r Range) Len() int {
	return r.Hi - r.Lo
}

func (r Range) Empty() bool {
	return r.Hi == r.Lo
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Lo, r.Hi)
}

// check validates r against a sequence of length n. Ranges are never
// clamped.
func (r Range) check(n int) error {
	if r.Lo < 0 || r.Hi < r.Lo || r.Hi > n {
		return &RangeError{Range: r, Len: n}
	}
	return nil
}

// RangeError reports a Range outside [0, Len].
type RangeError struct {
	Range Range
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("zio: range %s out of bounds [0, %d]", e.Range, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrBounds
}

// indexError reports a single index outside [0, n).
func indexError(i, n int) error {
	return &RangeError{Range: Range{Lo: i, Hi: i + 1}, Len: n}
}
