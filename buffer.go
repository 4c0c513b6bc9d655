package zio

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/mcache"
)

// Buffer is contiguous byte storage owned by the caller. Views created by
// View and View.Slice are windows onto the same bytes, so a mutation made
// through one is seen by all of them and by Bytes.
//
// A Buffer has a single writer at a time. Mutations take the buffer's
// write key. A second writer arriving while a mutation is in flight gets
// ErrConcurrentMutation instead of racing it. Reads are not guarded.
type Buffer struct {
	locker
	buf []byte
	// pooled marks storage taken from mcache, which Release gives back.
	pooled bool
}

// NewBuffer returns an empty Buffer with room for capacity bytes.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = defaultBufferSize
	}
	return &Buffer{buf: mcache.Malloc(0, capacity), pooled: true}
}

// WrapBuffer returns a Buffer over b. Mutations that fit in cap(b) write
// into b's backing array.
func WrapBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Bytes aliases the buffer contents. It stays valid until the next
// mutation that changes the length.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// View returns a view over the whole buffer.
func (b *Buffer) View() *View {
	return &View{buf: b, off: 0, n: len(b.buf)}
}

// Release hands pooled storage back to mcache. Later mutations fail with
// ErrReleased. Release waits for an in-flight mutation and is idempotent.
func (b *Buffer) Release() {
	if !b.stop(mutating) {
		return
	}
	if b.pooled {
		mcache.Free(b.buf)
	}
	b.buf, b.pooled = nil, false
}

// replace splices p into the absolute range r.
func (b *Buffer) replace(r Range, p []byte) (err error) {
	if err = b.lock(mutating); err != nil {
		return err
	}
	defer b.unlock(mutating)
	if err = r.check(len(b.buf)); err != nil {
		return err
	}
	var grown bool
	b.buf, grown = splice(b.buf, r, p, malloc)
	if grown {
		// The previous storage may still be aliased by an old Bytes
		// result, so it is left to the GC rather than freed.
		b.pooled = true
	}
	return nil
}

// fill overwrites the absolute range r with c.
func (b *Buffer) fill(r Range, c byte) (err error) {
	if err = b.lock(mutating); err != nil {
		return err
	}
	defer b.unlock(mutating)
	if err = r.check(len(b.buf)); err != nil {
		return err
	}
	memset(b.buf[r.Lo:r.Hi], c)
	return nil
}

func malloc(n int) []byte {
	return mcache.Malloc(n)
}

// splice replaces s[r.Lo:r.Hi] with p. It works in place when the result
// fits in cap(s), otherwise it copies into alloc(n). r must be valid.
func splice(s []byte, r Range, p []byte, alloc func(n int) []byte) (out []byte, grown bool) {
	n := len(s) - r.Len() + len(p)
	if overlaps(s, p) {
		p = append([]byte(nil), p...)
	}
	if n <= cap(s) {
		out = s[:n]
		copy(out[r.Lo+len(p):], s[r.Hi:])
		copy(out[r.Lo:], p)
		return out, false
	}
	out = alloc(n)
	copy(out, s[:r.Lo])
	copy(out[r.Lo:], p)
	copy(out[r.Lo+len(p):], s[r.Hi:])
	return out, true
}

// overlaps reports whether p shares memory with the backing array of s.
func overlaps(s, p []byte) bool {
	if cap(s) == 0 || len(p) == 0 {
		return false
	}
	s0 := uintptr(unsafe.Pointer(unsafe.SliceData(s)))
	p0 := uintptr(unsafe.Pointer(unsafe.SliceData(p)))
	return p0 < s0+uintptr(cap(s)) && s0 < p0+uintptr(len(p))
}

func memset(s []byte, c byte) {
	if c == 0 {
		for i := range s {
			s[i] = 0
		}
		return
	}
	if len(s) == 0 {
		return
	}
	s[0] = c
	for i := 1; i < len(s); i *= 2 {
		copy(s[i:], s[:i])
	}
}
