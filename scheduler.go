package cacherepository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/karupanerura/cache-repository/internal/panicutil"
)

const (
	resetIdle int32 = iota
	resetActive
	resetReleased
)

// resetScheduler owns at most one repeating ticker that calls tick on every period.
// It moves idle -> active once and active|idle -> released once; it never restarts.
type resetScheduler struct {
	clock    Clock
	interval time.Duration
	tick     func()
	onError  func(error)

	state  atomic.Int32
	inTick atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newResetScheduler(clock Clock, interval time.Duration, tick func(), onError func(error)) *resetScheduler {
	return &resetScheduler{
		clock:    clock,
		interval: interval,
		tick:     tick,
		onError:  onError,
	}
}

// start launches the background loop. It returns false if the scheduler already left the idle state.
func (s *resetScheduler) start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CompareAndSwap(resetIdle, resetActive) {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	ticker := s.clock.NewTicker(s.interval)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.poll(ctx, ticker)
	return true
}

// stop releases the ticker and waits for the loop to exit, so no tick runs after it returns.
// A tick already in progress completes first. It returns false if the scheduler was not active.
//
// While a tick or the error handler is running, stop only cancels the loop and returns
// without waiting, so it can be called from the tick itself. The running tick still completes,
// and no further tick starts.
func (s *resetScheduler) stop() bool {
	s.mu.Lock()
	prev := s.state.Swap(resetReleased)
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if prev != resetActive {
		return false
	}
	cancel()
	if !s.inTick.Load() {
		<-done
	}
	return true
}

func (s *resetScheduler) active() bool {
	return s.state.Load() == resetActive
}

// poll calls tick on every period until ctx is canceled.
func (s *resetScheduler) poll(ctx context.Context, ticker Ticker) {
	defer close(s.done)
	defer ticker.Stop()

	for ctx.Err() == nil {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C():
			s.inTick.Store(true)
			if err := panicutil.Run(s.tick); err != nil {
				s.onError(err)
			}
			s.inTick.Store(false)
		}
	}
}
