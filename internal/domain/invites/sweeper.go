package invites

import (
	"context"
	"sync"
	"time"

	"trip-planner-go/pkg/logger"
)

type sweepRunner interface {
	Sweep(ctx context.Context) (int64, error)
}

// Sweeper periodically expires overdue pending invites. Lazy expiry on read
// keeps working without it; the sweep only keeps stored statuses fresh.
type Sweeper struct {
	runner   sweepRunner
	interval time.Duration
	log      logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(runner sweepRunner, interval time.Duration, log logger.Logger) *Sweeper {
	return &Sweeper{runner: runner, interval: interval, log: log}
}

// Start launches the sweep loop. It is a no-op when the interval is not
// positive or the loop is already running.
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.log.Info("invites: sweeper disabled")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
	s.log.Info("invites: sweeper started", "interval", s.interval.String())
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	expired, err := s.runner.Sweep(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.InternalError("invites.sweep: failed", err)
		return
	}
	if expired > 0 {
		s.log.Info("invites: expired overdue invites", "count", expired)
	}
}
