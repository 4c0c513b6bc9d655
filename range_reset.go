package zio

// ReplaceRange replaces the bytes of v at r with p. The length of v changes
// by len(p)-r.Len(). A range outside [0, v.Len()] fails with a *RangeError
// and v is left unmodified.
func ReplaceRange(v MutableBytes, r Range, p []byte) error {
	return v.ReplaceRange(r, p)
}

// ResetRange zeroes the bytes of v at r without changing its length.
// An empty r is valid and touches nothing.
func ResetRange(v MutableBytes, r Range) error {
	return FillRange(v, r, 0)
}

// FillRange overwrites the bytes of v at r with fill without changing its
// length. It uses v's RangeFiller when available, otherwise a same-length
// ReplaceRange.
func FillRange(v MutableBytes, r Range, fill byte) error {
	if f, ok := v.(RangeFiller); ok {
		return f.FillRange(r, fill)
	}
	if err := r.check(v.Len()); err != nil {
		return err
	}
	if r.Empty() {
		return nil
	}
	p := make([]byte, r.Len())
	memset(p, fill)
	return v.ReplaceRange(r, p)
}
