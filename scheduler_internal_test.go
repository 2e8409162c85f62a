package cacherepository

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type stubTicker struct {
	ch      chan time.Time
	stopped atomic.Bool

	once sync.Once
	done chan struct{}
}

func newStubTicker() *stubTicker {
	return &stubTicker{ch: make(chan time.Time), done: make(chan struct{})}
}

func (t *stubTicker) C() <-chan time.Time { return t.ch }

func (t *stubTicker) Stop() {
	t.stopped.Store(true)
	t.once.Do(func() { close(t.done) })
}

func (t *stubTicker) waitStopped(tb testing.TB) {
	tb.Helper()
	select {
	case <-t.done:
	case <-time.After(2 * time.Second):
		tb.Fatal("loop did not exit")
	}
}

func TestResetScheduler_Lifecycle(t *testing.T) {
	t.Parallel()

	var created atomic.Int32
	ticker := newStubTicker()
	clock := ClockFunc(func(time.Duration) Ticker {
		created.Add(1)
		return ticker
	})

	var ticks atomic.Int32
	s := newResetScheduler(clock, time.Second, func() { ticks.Add(1) }, func(error) {})
	if s.active() {
		t.Fatal("new scheduler must be idle")
	}
	if !s.start() {
		t.Fatal("first start must succeed")
	}
	if s.start() {
		t.Error("second start must fail")
	}
	if created.Load() != 1 {
		t.Errorf("expected one ticker, got %d", created.Load())
	}

	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	if !s.stop() {
		t.Error("first stop must release the active scheduler")
	}
	ticker.waitStopped(t)
	if n := ticks.Load(); n != 2 {
		t.Errorf("expected 2 ticks, got %d", n)
	}
	if !ticker.stopped.Load() {
		t.Error("ticker must be stopped")
	}
	if s.stop() {
		t.Error("second stop must be a no-op")
	}
	if s.start() {
		t.Error("released scheduler must not restart")
	}
}

func TestResetScheduler_StopBeforeStart(t *testing.T) {
	t.Parallel()

	clock := ClockFunc(func(time.Duration) Ticker {
		t.Error("ticker must not be created")
		return newStubTicker()
	})
	s := newResetScheduler(clock, time.Second, func() {}, func(error) {})
	if s.stop() {
		t.Error("stopping an idle scheduler must report false")
	}
	if s.start() {
		t.Error("released scheduler must not start")
	}
}

func TestResetScheduler_ConcurrentStop(t *testing.T) {
	t.Parallel()

	s := newResetScheduler(ClockFunc(func(time.Duration) Ticker {
		return newStubTicker()
	}), time.Second, func() {}, func(error) {})
	s.start()

	var released atomic.Int32
	done := make(chan struct{})
	for range 4 {
		go func() {
			defer func() { done <- struct{}{} }()
			if s.stop() {
				released.Add(1)
			}
		}()
	}
	for range 4 {
		<-done
	}
	if n := released.Load(); n != 1 {
		t.Errorf("exactly one stop must release the scheduler, got %d", n)
	}
}

func TestResetScheduler_StopFromTick(t *testing.T) {
	t.Parallel()

	ticker := newStubTicker()
	var s *resetScheduler
	var ticks atomic.Int32
	s = newResetScheduler(ClockFunc(func(time.Duration) Ticker {
		return ticker
	}), time.Second, func() {
		ticks.Add(1)
		if !s.stop() {
			t.Error("stop from the tick must release the scheduler")
		}
	}, func(error) {})
	s.start()

	ticker.ch <- time.Now()
	ticker.waitStopped(t)

	if n := ticks.Load(); n != 1 {
		t.Errorf("expected 1 tick, got %d", n)
	}
	if s.active() {
		t.Error("scheduler must be released")
	}
	if s.stop() {
		t.Error("second stop must be a no-op")
	}
}
