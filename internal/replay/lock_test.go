package replay

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestLock(t *testing.T) {
	l := NewLock()
	if l.Held() {
		t.Fatal("new lock is held")
	}
	if !l.TryAcquire() {
		t.Fatal("TryAcquire on free lock failed")
	}
	if l.TryAcquire() {
		t.Error("TryAcquire on held lock succeeded")
	}
	l.Release()
	if l.Held() {
		t.Error("Release did not free the lock")
	}
}

func TestLockSingleWinner(t *testing.T) {
	l := NewLock()
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.TryAcquire() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	if wins.Load() != 1 {
		t.Errorf("winners = %d, want 1", wins.Load())
	}
}
