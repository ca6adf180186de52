package replay

import "sync/atomic"

// Lock guarantees at most one job runs at a time.
// The zero value is unlocked. Share one Lock between every engine that
// types on the same keyboard.
type Lock struct {
	held atomic.Bool
}

// NewLock returns an unlocked lock.
func NewLock() *Lock {
	return &Lock{}
}

// TryAcquire takes the lock if it is free. It never blocks.
func (l *Lock) TryAcquire() bool {
	return l.held.CompareAndSwap(false, true)
}

// Release frees the lock.
func (l *Lock) Release() {
	l.held.Store(false)
}

// Held reports whether the lock is taken.
func (l *Lock) Held() bool {
	return l.held.Load()
}
