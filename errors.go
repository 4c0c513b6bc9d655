package zio

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by the io-shaped methods (Read, Write, Accept)
// when the descriptor is not ready. The Try* methods never return it; they
// report the same condition as a WouldBlock result.
var ErrWouldBlock = errors.New("zio: would block")

var (
	// ErrBounds is matched by every *RangeError.
	ErrBounds = errors.New("zio: range out of bounds")

	// ErrConcurrentMutation means another writer holds the buffer.
	ErrConcurrentMutation = errors.New("zio: concurrent buffer mutation")

	// ErrReleased means the buffer storage was already released.
	ErrReleased = errors.New("zio: buffer released")

	// ErrUnsupported is returned for deadlines and listener types the fd
	// layer does not handle.
	ErrUnsupported = errors.New("zio: unsupported operation")
)

// IsWouldBlock reports whether err is the platform blocking indicator
// (EAGAIN/EWOULDBLOCK) or ErrWouldBlock, including wrapped forms.
func IsWouldBlock(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrWouldBlock) ||
		errors.Is(err, unix.EAGAIN) ||
		errors.Is(err, unix.EWOULDBLOCK)
}

func isInterrupted(err error) bool {
	return err == syscall.EINTR
}
