package zio_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zhihanii/zio"
)

func viewOf(t *testing.T, p []byte) *zio.View {
	t.Helper()
	buf := zio.NewBuffer(len(p))
	t.Cleanup(buf.Release)
	v := buf.View()
	if err := v.ReplaceRange(v.Indices(), p); err != nil {
		t.Fatalf("seed view: %v", err)
	}
	return v
}

// impls builds each MutableBytes implementation seeded with p.
var impls = map[string]func(t *testing.T, p []byte) zio.MutableBytes{
	"View": func(t *testing.T, p []byte) zio.MutableBytes {
		return viewOf(t, p)
	},
	"ByteSlice": func(t *testing.T, p []byte) zio.MutableBytes {
		s := zio.ByteSlice(append([]byte(nil), p...))
		return &s
	},
}

func contents(t *testing.T, v zio.ByteSequence) []byte {
	t.Helper()
	out := make([]byte, v.Len())
	for i := range out {
		b, err := v.ByteAt(i)
		if err != nil {
			t.Fatalf("ByteAt(%d): %v", i, err)
		}
		out[i] = b
	}
	return out
}

func TestResetRange_Scenario(t *testing.T) {
	for name, mk := range impls {
		t.Run(name, func(t *testing.T) {
			v := mk(t, nil)
			if err := zio.ResetRange(v, zio.Span(0, v.Len())); err != nil {
				t.Fatalf("reset empty: %v", err)
			}
			if v.Len() != 0 {
				t.Fatalf("Len()=%d after resetting empty view", v.Len())
			}

			if err := zio.ReplaceRange(v, zio.Span(0, 0), []byte{1, 2, 3, 4, 5}); err != nil {
				t.Fatalf("replace: %v", err)
			}
			if diff := cmp.Diff([]byte{1, 2, 3, 4, 5}, contents(t, v)); diff != "" {
				t.Fatalf("after replace (-want +got):\n%s", diff)
			}

			if err := zio.ResetRange(v, zio.Span(0, 2)); err != nil {
				t.Fatalf("reset [0,2): %v", err)
			}
			if diff := cmp.Diff([]byte{0, 0, 3, 4, 5}, contents(t, v)); diff != "" {
				t.Fatalf("after reset [0,2) (-want +got):\n%s", diff)
			}

			if err := zio.ResetRange(v, zio.Through(2, 4)); err != nil {
				t.Fatalf("reset [2,4]: %v", err)
			}
			if diff := cmp.Diff([]byte{0, 0, 0, 0, 0}, contents(t, v)); diff != "" {
				t.Fatalf("after reset [2,4] (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFillRange_WholeRange(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog")
	for name, mk := range impls {
		for _, fill := range []byte{0, 0xff, 'x'} {
			v := mk(t, src)
			if err := zio.FillRange(v, zio.Span(0, v.Len()), fill); err != nil {
				t.Fatalf("%s: fill %#x: %v", name, fill, err)
			}
			want := bytes.Repeat([]byte{fill}, len(src))
			if diff := cmp.Diff(want, contents(t, v)); diff != "" {
				t.Fatalf("%s: fill %#x (-want +got):\n%s", name, fill, diff)
			}
		}
	}
}

func TestResetRange_SubRangeOnly(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for name, mk := range impls {
		for a := 0; a <= len(src); a++ {
			for b := a; b <= len(src); b++ {
				v := mk(t, src)
				if err := zio.ResetRange(v, zio.Span(a, b)); err != nil {
					t.Fatalf("%s: reset [%d,%d): %v", name, a, b, err)
				}
				want := append([]byte(nil), src...)
				for i := a; i < b; i++ {
					want[i] = 0
				}
				if diff := cmp.Diff(want, contents(t, v)); diff != "" {
					t.Fatalf("%s: reset [%d,%d) (-want +got):\n%s", name, a, b, diff)
				}
			}
		}
	}
}

func TestReplaceRange_LengthDelta(t *testing.T) {
	src := []byte("abcdefgh")
	repl := [][]byte{nil, []byte("X"), []byte("XYZ"), []byte("0123456789abcdef")}
	for name, mk := range impls {
		for a := 0; a <= len(src); a++ {
			for b := a; b <= len(src); b++ {
				for _, p := range repl {
					v := mk(t, src)
					if err := zio.ReplaceRange(v, zio.Span(a, b), p); err != nil {
						t.Fatalf("%s: replace [%d,%d): %v", name, a, b, err)
					}
					if got, want := v.Len(), len(src)+len(p)-(b-a); got != want {
						t.Fatalf("%s: Len()=%d, want %d", name, got, want)
					}
					want := make([]byte, 0, len(src)+len(p))
					want = append(append(append(want, src[:a]...), p...), src[b:]...)
					if diff := cmp.Diff(want, contents(t, v)); diff != "" {
						t.Fatalf("%s: replace [%d,%d) with %q (-want +got):\n%s", name, a, b, p, diff)
					}
				}
			}
		}
	}
}

func TestReplaceRange_Bounds(t *testing.T) {
	src := []byte{1, 2, 3, 4, 5}
	bad := []zio.Range{
		{Lo: 6, Hi: 6},
		{Lo: 3, Hi: 2},
		{Lo: -1, Hi: 2},
		{Lo: 0, Hi: 6},
		zio.Through(4, 5),
	}
	for name, mk := range impls {
		for _, r := range bad {
			v := mk(t, src)
			for op, call := range map[string]func() error{
				"replace": func() error { return zio.ReplaceRange(v, r, []byte{9}) },
				"reset":   func() error { return zio.ResetRange(v, r) },
				"fill":    func() error { return zio.FillRange(v, r, 7) },
			} {
				err := call()
				if !errors.Is(err, zio.ErrBounds) {
					t.Fatalf("%s %s %v: err=%v, want ErrBounds", name, op, r, err)
				}
				var re *zio.RangeError
				if !errors.As(err, &re) || re.Range != r || re.Len != len(src) {
					t.Fatalf("%s %s %v: err=%#v", name, op, r, err)
				}
				if diff := cmp.Diff(src, contents(t, v)); diff != "" {
					t.Fatalf("%s %s %v modified the view (-want +got):\n%s", name, op, r, diff)
				}
			}
		}
	}
}

func TestByteAt_Bounds(t *testing.T) {
	for name, mk := range impls {
		v := mk(t, []byte{1, 2})
		for _, i := range []int{-1, 2, 100} {
			if _, err := v.ByteAt(i); !errors.Is(err, zio.ErrBounds) {
				t.Fatalf("%s: ByteAt(%d) err=%v", name, i, err)
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Aliasing
// -----------------------------------------------------------------------------

func TestView_AliasesWrappedStorage(t *testing.T) {
	storage := []byte("hello world")
	buf := zio.WrapBuffer(storage)
	a, b := buf.View(), buf.View()
	if err := a.ResetRange(zio.Span(0, 5)); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if diff := cmp.Diff([]byte("\x00\x00\x00\x00\x00 world"), storage); diff != "" {
		t.Fatalf("caller storage (-want +got):\n%s", diff)
	}
	if !b.Equal(storage) {
		t.Fatalf("second view did not observe the reset: %q", b.Bytes())
	}
}

func TestView_SliceSharesStorage(t *testing.T) {
	v := viewOf(t, []byte("0123456789"))
	sub, err := v.Slice(zio.Span(2, 6))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if !sub.Equal([]byte("2345")) {
		t.Fatalf("sub=%q", sub.Bytes())
	}
	if err := sub.FillRange(sub.Indices(), '_'); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if !v.Equal([]byte("01____6789")) {
		t.Fatalf("parent=%q", v.Bytes())
	}
	if _, err := v.Slice(zio.Span(8, 11)); !errors.Is(err, zio.ErrBounds) {
		t.Fatalf("Slice out of range err=%v", err)
	}
}

func TestView_SubViewReplaceMovesTail(t *testing.T) {
	v := viewOf(t, []byte("head|mid|tail"))
	mid, err := v.Slice(zio.Span(5, 8))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if err := mid.ReplaceRange(mid.Indices(), []byte("middle")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !mid.Equal([]byte("middle")) {
		t.Fatalf("mid=%q", mid.Bytes())
	}
	parent := v.Bytes()
	if v.Len() != 16 || !bytes.Equal(parent, []byte("head|middle|tail")) {
		t.Fatalf("parent window=%q", parent)
	}
}

func TestView_SubViewShrinkKeepsParentUsable(t *testing.T) {
	v := viewOf(t, []byte{1, 2, 3, 4, 5})
	mid, err := v.Slice(zio.Span(1, 3))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	inner, err := mid.Slice(zio.Span(0, 1))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if err := inner.ReplaceRange(inner.Indices(), nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if inner.Len() != 0 || mid.Len() != 1 || v.Len() != 4 {
		t.Fatalf("Len() inner=%d mid=%d parent=%d", inner.Len(), mid.Len(), v.Len())
	}
	if err := mid.ReplaceRange(mid.Indices(), nil); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if diff := cmp.Diff([]byte{1, 4, 5}, contents(t, v)); diff != "" {
		t.Fatalf("parent after shrink (-want +got):\n%s", diff)
	}
	if err := v.ResetRange(zio.Span(0, 1)); err != nil {
		t.Fatalf("reset parent: %v", err)
	}
	if diff := cmp.Diff([]byte{0, 4, 5}, contents(t, v)); diff != "" {
		t.Fatalf("parent after reset (-want +got):\n%s", diff)
	}
}

func TestView_StaleWindow(t *testing.T) {
	v := viewOf(t, []byte{1, 2, 3, 4, 5})
	tail, err := v.Slice(zio.Span(3, 5))
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if err := v.ReplaceRange(v.Indices(), nil); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if v.Len() != 0 || !v.Equal(nil) {
		t.Fatalf("Len()=%d after full replace with nothing", v.Len())
	}
	if _, err := tail.ByteAt(0); !errors.Is(err, zio.ErrBounds) {
		t.Fatalf("stale ByteAt err=%v", err)
	}
	if tail.Bytes() != nil || tail.Equal(nil) {
		t.Fatalf("stale view still readable")
	}
	if err := tail.ResetRange(tail.Indices()); !errors.Is(err, zio.ErrBounds) {
		t.Fatalf("stale reset err=%v", err)
	}
}

func TestView_ReplaceWithOwnBytes(t *testing.T) {
	v := viewOf(t, []byte("abc"))
	if err := v.ReplaceRange(zio.Span(0, 0), v.Bytes()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !v.Equal([]byte("abcabc")) {
		t.Fatalf("got %q", v.Bytes())
	}
	if err := v.ReplaceRange(zio.Span(1, 5), v.Bytes()[4:]); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if !v.Equal([]byte("abcc")) {
		t.Fatalf("got %q", v.Bytes())
	}
}

func TestView_GrowPastCapacity(t *testing.T) {
	buf := zio.NewBuffer(4)
	defer buf.Release()
	v := buf.View()
	big := bytes.Repeat([]byte("z"), 10*buf.Cap())
	if err := v.ReplaceRange(zio.Span(0, 0), []byte("ab")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := v.ReplaceRange(zio.Span(1, 1), big); err != nil {
		t.Fatalf("grow: %v", err)
	}
	want := append(append([]byte("a"), big...), 'b')
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Fatalf("grown buffer (-want +got):\n%s", diff)
	}
	if buf.Cap() < len(want) {
		t.Fatalf("Cap()=%d < Len()=%d", buf.Cap(), len(want))
	}
}

func TestView_WriteTo(t *testing.T) {
	v := viewOf(t, []byte("payload"))
	var out bytes.Buffer
	n, err := v.WriteTo(&out)
	if err != nil || n != 7 || out.String() != "payload" {
		t.Fatalf("WriteTo=(%d, %v), wrote %q", n, err, out.String())
	}
}

func TestBuffer_Release(t *testing.T) {
	buf := zio.NewBuffer(16)
	v := buf.View()
	if err := v.ReplaceRange(zio.Span(0, 0), []byte("secret")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	buf.Release()
	buf.Release()
	if err := v.ResetRange(zio.Span(0, 0)); !errors.Is(err, zio.ErrReleased) {
		t.Fatalf("reset after release err=%v", err)
	}
	if err := zio.ReplaceRange(v, zio.Span(0, 0), []byte("x")); !errors.Is(err, zio.ErrReleased) {
		t.Fatalf("replace after release err=%v", err)
	}
	if buf.Len() != 0 || v.Bytes() != nil {
		t.Fatalf("released buffer still exposes bytes")
	}
}
