package zio

import (
	"sync"
	"syscall"
)

// barriercap bounds the number of slices handed to one readv/sendmsg.
const barriercap = 32

type barrier struct {
	ivs []syscall.Iovec
}

var barrierPool = sync.Pool{
	New: func() interface{} {
		return &barrier{
			ivs: make([]syscall.Iovec, barriercap),
		}
	},
}

// iovecs points ivs at the non-empty slices of bs and returns how many
// entries are in use.
func iovecs(bs [][]byte, ivs []syscall.Iovec) (iovLen int) {
	for i := 0; i < len(bs) && iovLen < len(ivs); i++ {
		if len(bs[i]) == 0 {
			continue
		}
		ivs[iovLen].Base = &bs[i][0]
		ivs[iovLen].SetLen(len(bs[i]))
		iovLen++
	}
	return iovLen
}

// resetIovecs drops the references iovecs took, so a pooled barrier does
// not pin caller memory.
func resetIovecs(ivs []syscall.Iovec) {
	for i := range ivs {
		ivs[i].Base = nil
		ivs[i].SetLen(0)
	}
}
