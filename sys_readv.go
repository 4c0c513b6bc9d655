package zio

import (
	"syscall"
	"unsafe"
)

func readv(fd int, bs [][]byte, ivs []syscall.Iovec) (n int, err error) {
	iovLen := iovecs(bs, ivs)
	if iovLen == 0 {
		return 0, nil
	}
	var r uintptr
	var e syscall.Errno
	for {
		r, _, e = syscall.RawSyscall(syscall.SYS_READV, uintptr(fd), uintptr(unsafe.Pointer(&ivs[0])), uintptr(iovLen))
		if e != syscall.EINTR {
			break
		}
	}
	resetIovecs(ivs[:iovLen])
	if e != 0 {
		return 0, e
	}
	return int(r), nil
}
