package zio

import (
	"fmt"
	"syscall"
)

// Status tags an IOResult.
type Status uint8

const (
	// StatusCompleted: the call's contribution is final, the payload is
	// authoritative. Zero-length completions (EOF) and partial transfers
	// are Completed too.
	StatusCompleted Status = iota
	// StatusWouldBlock: the call hit the blocking indicator. The payload is
	// the progress made before that; retry after a readiness notification.
	StatusWouldBlock
)

func (s Status) String() string {
	switch s {
	case StatusWouldBlock:
		return "WouldBlock"
	default:
		return "Completed"
	}
}

// IOResult is the outcome of a non-blocking operation that did not fail:
// either WouldBlock(v) or Completed(v). Failures are reported through the
// accompanying error, never inside an IOResult.
//
// The zero value is Completed with a zero payload.
type IOResult[T any] struct {
	status Status
	value  T
}

// WouldBlock returns a WouldBlock result carrying the progress v.
func WouldBlock[T any](v T) IOResult[T] {
	return IOResult[T]{status: StatusWouldBlock, value: v}
}

// Completed returns a Completed result carrying v.
func Completed[T any](v T) IOResult[T] {
	return IOResult[T]{status: StatusCompleted, value: v}
}

func (r IOResult[T]) Status() Status {
	return r.status
}

// Value returns the payload regardless of the variant. Check Status first:
// under WouldBlock it is progress so far, not a final count.
func (r IOResult[T]) Value() T {
	return r.value
}

func (r IOResult[T]) IsWouldBlock() bool {
	return r.status == StatusWouldBlock
}

func (r IOResult[T]) IsCompleted() bool {
	return r.status == StatusCompleted
}

// WouldBlocked returns the payload and true if r is WouldBlock.
func (r IOResult[T]) WouldBlocked() (v T, ok bool) {
	if r.status != StatusWouldBlock {
		return v, false
	}
	return r.value, true
}

// Processed returns the payload and true if r is Completed.
func (r IOResult[T]) Processed() (v T, ok bool) {
	if r.status != StatusCompleted {
		return v, false
	}
	return r.value, true
}

// Err returns ErrWouldBlock for a WouldBlock result and nil otherwise, for
// callers that signal readiness through errors.
func (r IOResult[T]) Err() error {
	if r.status == StatusWouldBlock {
		return ErrWouldBlock
	}
	return nil
}

func (r IOResult[T]) String() string {
	return fmt.Sprintf("%s(%v)", r.status, r.value)
}

// ResultOf classifies the raw return of a non-blocking call named op.
//
//	err == nil         -> Completed(v), nil
//	blocking indicator -> WouldBlock(v), nil
//	syscall.Errno      -> zero result, SystemError
//	anything else      -> zero result, err
func ResultOf[T any](op string, v T, err error) (IOResult[T], error) {
	if err == nil || err == syscall.Errno(0) {
		return Completed(v), nil
	}
	if IsWouldBlock(err) {
		return WouldBlock(v), nil
	}
	return IOResult[T]{}, errnoErr(op, err)
}
