package zio

const (
	block1k = 1 * 1024

	defaultBufferSize = block1k
)

// ByteSequence is random-access read over bytes owned elsewhere.
type ByteSequence interface {
	Len() (length int)
	ByteAt(i int) (b byte, err error)
}

// MutableBytes is a ByteSequence whose sub-ranges can be replaced in place.
//
// ReplaceRange replaces the bytes at r with p; len(p) need not equal
// r.Len(), so the length changes by len(p)-r.Len(). A range outside
// [0, Len()] fails with a *RangeError and leaves the bytes untouched.
type MutableBytes interface {
	ByteSequence
	ReplaceRange(r Range, p []byte) (err error)
}

// RangeFiller is implemented by MutableBytes that can overwrite a range
// with a single byte without building a replacement slice.
type RangeFiller interface {
	FillRange(r Range, fill byte) (err error)
}
