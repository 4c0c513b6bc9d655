package zio

import "syscall"

const (
	SO_ZEROCOPY  = 60
	MSG_ZEROCOPY = 0x4000000
)

// SetZeroCopy enables SO_ZEROCOPY on fd.
func SetZeroCopy(fd int) error {
	return errnoErr("setsockopt(SO_ZEROCOPY)", syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, SO_ZEROCOPY, 1))
}
