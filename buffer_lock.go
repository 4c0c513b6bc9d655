package zio

import (
	"runtime"
	"sync/atomic"
)

type key int32

/* State Diagram
+--------------+  Release  +--------------+
|   mutating   |---------->|   released   |
+--------------+           +--------------+

- "mutating" is held for the duration of one ReplaceRange/FillRange.
- "released" waits for an in-flight mutation and then refuses all later ones.
*/

const (
	mutating key = iota
	// total must be at the bottom.
	total
)

const (
	unlocked int32 = iota
	locked
	stopped
)

// locker is the single-writer guard of a Buffer. It never blocks a
// writer: a second concurrent writer fails instead of waiting.
type locker struct {
	// keychain: 0 means unlock, 1 means locked, 2 means stop.
	keychain [total]int32
}

func (l *locker) lock(k key) (err error) {
	if atomic.CompareAndSwapInt32(&l.keychain[k], unlocked, locked) {
		return nil
	}
	if atomic.LoadInt32(&l.keychain[k]) == stopped {
		return ErrReleased
	}
	return ErrConcurrentMutation
}

func (l *locker) unlock(k key) {
	atomic.StoreInt32(&l.keychain[k], unlocked)
}

// stop waits for the current holder of k and marks it stopped. It reports
// whether this call did the stopping.
func (l *locker) stop(k key) (first bool) {
	for !atomic.CompareAndSwapInt32(&l.keychain[k], unlocked, stopped) {
		if atomic.LoadInt32(&l.keychain[k]) == stopped {
			return false
		}
		runtime.Gosched()
	}
	return true
}

func (l *locker) isStopped(k key) bool {
	return atomic.LoadInt32(&l.keychain[k]) == stopped
}
