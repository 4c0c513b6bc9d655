package zio

import (
	"bytes"
	"io"
)

// View is a window onto a Buffer. It owns no storage: ReplaceRange,
// FillRange and ResetRange write straight into the buffer, and every other
// view of that buffer observes the result immediately.
//
// A replace that changes the length moves the bytes after it. The view
// and every view it was sliced from grow or shrink with it. Other views
// keep their offsets; a view whose window no longer fits inside the buffer
// fails every access with a *RangeError.
type View struct {
	buf *Buffer
	// parent is the view this one was sliced from, nil for Buffer.View.
	parent *View
	off    int
	n      int
}

func (v *View) window() error {
	if v.buf.isStopped(mutating) {
		return ErrReleased
	}
	return Span(v.off, v.off+v.n).check(v.buf.Len())
}

// Len returns the number of bytes in the window.
func (v *View) Len() int {
	return v.n
}

// Indices returns [0, Len()).
func (v *View) Indices() Range {
	return Span(0, v.n)
}

func (v *View) ByteAt(i int) (b byte, err error) {
	if err = v.window(); err != nil {
		return 0, err
	}
	if i < 0 || i >= v.n {
		return 0, indexError(i, v.n)
	}
	return v.buf.buf[v.off+i], nil
}

// Bytes aliases the window, or returns nil if the window is invalid. The
// result stays valid until the next length-changing mutation.
func (v *View) Bytes() []byte {
	if v.window() != nil {
		return nil
	}
	return v.buf.buf[v.off : v.off+v.n : v.off+v.n]
}

// Equal reports whether the window holds exactly p.
func (v *View) Equal(p []byte) bool {
	if v.window() != nil {
		return false
	}
	return bytes.Equal(v.buf.buf[v.off:v.off+v.n], p)
}

// Slice returns a view onto r of this view's window.
func (v *View) Slice(r Range) (*View, error) {
	if err := v.window(); err != nil {
		return nil, err
	}
	if err := r.check(v.n); err != nil {
		return nil, err
	}
	return &View{buf: v.buf, parent: v, off: v.off + r.Lo, n: r.Len()}, nil
}

// ReplaceRange implements MutableBytes.
func (v *View) ReplaceRange(r Range, p []byte) (err error) {
	if err = v.window(); err != nil {
		return err
	}
	if err = r.check(v.n); err != nil {
		return err
	}
	if err = v.buf.replace(Span(v.off+r.Lo, v.off+r.Hi), p); err != nil {
		return err
	}
	delta := len(p) - r.Len()
	for w := v; w != nil; w = w.parent {
		w.n += delta
	}
	return nil
}

// FillRange implements RangeFiller. The length never changes.
func (v *View) FillRange(r Range, fill byte) (err error) {
	if err = v.window(); err != nil {
		return err
	}
	if err = r.check(v.n); err != nil {
		return err
	}
	return v.buf.fill(Span(v.off+r.Lo, v.off+r.Hi), fill)
}

// ResetRange zeroes r.
func (v *View) ResetRange(r Range) error {
	return v.FillRange(r, 0)
}

// WriteTo implements io.WriterTo.
func (v *View) WriteTo(w io.Writer) (n int64, err error) {
	if err = v.window(); err != nil {
		return 0, err
	}
	m, err := w.Write(v.buf.buf[v.off : v.off+v.n])
	return int64(m), err
}

// ByteSlice adapts a plain []byte to MutableBytes. Replacements that fit
// in its capacity reuse the backing array.
type ByteSlice []byte

func (s *ByteSlice) Len() int {
	return len(*s)
}

func (s *ByteSlice) ByteAt(i int) (byte, error) {
	if i < 0 || i >= len(*s) {
		return 0, indexError(i, len(*s))
	}
	return (*s)[i], nil
}

func (s *ByteSlice) ReplaceRange(r Range, p []byte) error {
	if err := r.check(len(*s)); err != nil {
		return err
	}
	*s, _ = splice(*s, r, p, func(n int) []byte { return make([]byte, n) })
	return nil
}
