package zio

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// SystemError is a failed system call: the raw errno plus a diagnostic
// message formatted when the error is created.
type SystemError struct {
	// Code is the errno set by the failed call.
	Code int32
	// Message is never empty.
	Message string
}

func (e SystemError) Error() string {
	return e.Message
}

// Errno returns Code as a syscall.Errno.
func (e SystemError) Errno() syscall.Errno {
	return syscall.Errno(e.Code)
}

// Unwrap exposes the errno, so errors.Is(err, syscall.ECONNRESET) and
// errors.Is(err, os.ErrPermission) work on a SystemError.
func (e SystemError) Unwrap() error {
	return e.Errno()
}

func (e SystemError) Timeout() bool {
	return e.Errno().Timeout()
}

func (e SystemError) Temporary() bool {
	return e.Errno().Temporary()
}

// Describer turns an errno into the host's description of it. ok is false
// when the host has no usable text for code.
type Describer interface {
	Describe(code int32) (desc string, ok bool)
}

// DescribeFunc adapts a plain function to Describer.
type DescribeFunc func(code int32) (desc string, ok bool)

func (f DescribeFunc) Describe(code int32) (string, bool) {
	return f(code)
}

// HostDescriber looks codes up in the errno table of the running OS.
var HostDescriber Describer = DescribeFunc(strerror)

func strerror(code int32) (string, bool) {
	if code <= 0 {
		return "", false
	}
	e := unix.Errno(code)
	if unix.ErrnoName(e) == "" {
		return "", false
	}
	return e.Error(), true
}

// NewSystemError builds the SystemError for a call named op that failed
// with code, using HostDescriber.
func NewSystemError(code int32, op string) SystemError {
	return NewSystemErrorWith(HostDescriber, code, op)
}

// NewSystemErrorWith is NewSystemError with an explicit lookup. A nil d, or
// a lookup that yields no text, produces the broken-lookup message, which
// still carries code.
func NewSystemErrorWith(d Describer, code int32, op string) SystemError {
	var desc string
	var ok bool
	if d != nil {
		desc, ok = d.Describe(code)
	}
	if !ok || desc == "" {
		return SystemError{
			Code:    code,
			Message: fmt.Sprintf("%s failed: broken strerror, unknown error: %d", op, code),
		}
	}
	return SystemError{
		Code:    code,
		Message: fmt.Sprintf("%s failed: %s (errno: %d)", op, desc, code),
	}
}

// errnoErr converts a raw syscall.Errno into a SystemError for op.
// nil and non-errno errors are returned as is.
func errnoErr(op string, err error) error {
	e, ok := err.(syscall.Errno)
	if !ok {
		return err
	}
	if e == 0 {
		return nil
	}
	return NewSystemError(int32(e), op)
}
