// internal/storage/debounce_test.go
package storage

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	var fired int32
	var last atomic.Value

	for _, v := range []string{"first", "second", "third"} {
		v := v
		d.Schedule("k", func() {
			atomic.AddInt32(&fired, 1)
			last.Store(v)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)

	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Fatalf("burst of three schedules fired %d times, want 1", n)
	}
	if got := last.Load(); got != "third" {
		t.Errorf("flushed value = %v, want third", got)
	}
}

func TestDebouncerIndependentKeys(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var a, b int32
	d.Schedule("a", func() { atomic.AddInt32(&a, 1) })
	d.Schedule("b", func() { atomic.AddInt32(&b, 1) })

	time.Sleep(60 * time.Millisecond)

	if atomic.LoadInt32(&a) != 1 || atomic.LoadInt32(&b) != 1 {
		t.Errorf("each key should flush once, got a=%d b=%d", a, b)
	}
}

func TestDebouncerCancelDiscardsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var fired int32
	d.Schedule("k", func() { atomic.AddInt32(&fired, 1) })
	d.Cancel("k")

	time.Sleep(60 * time.Millisecond)

	if atomic.LoadInt32(&fired) != 0 {
		t.Error("cancelled flush should not run")
	}
}

func TestDebouncerFlushAllRunsImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)

	var fired int32
	d.Schedule("a", func() { atomic.AddInt32(&fired, 1) })
	d.Schedule("b", func() { atomic.AddInt32(&fired, 1) })

	d.FlushAll()

	if atomic.LoadInt32(&fired) != 2 {
		t.Errorf("FlushAll ran %d flushes, want 2", fired)
	}

	d.FlushAll()
	if atomic.LoadInt32(&fired) != 2 {
		t.Error("second FlushAll should be a no-op")
	}
}
