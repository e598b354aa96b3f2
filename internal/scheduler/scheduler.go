// Package scheduler runs the behavior engine on a fixed period, independent
// of the render loop.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stealth/internal/behavior"
	"github.com/vovakirdan/tui-stealth/internal/metrics"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

// DefaultInterval is the pause between two obstacle ticks.
const DefaultInterval = 120 * time.Millisecond

var (
	// ErrNilWorld is returned by Start when no world is given.
	ErrNilWorld = errors.New("scheduler: nil world")
	// ErrAlreadyRunning is returned by Start while a world is being simulated.
	ErrAlreadyRunning = errors.New("scheduler: already running")
)

// Scheduler owns the background goroutine that advances obstacles.
type Scheduler struct {
	engine   *behavior.Engine
	interval time.Duration
	logger   *log.Logger
	metrics  *metrics.Collector

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithInterval sets the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics reports ticks to c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Scheduler) {
		s.metrics = c
	}
}

// New creates an idle scheduler driving engine.
func New(engine *behavior.Engine, opts ...Option) *Scheduler {
	s := &Scheduler{
		engine:   engine,
		interval: DefaultInterval,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the behavior engine the scheduler drives.
func (s *Scheduler) Engine() *behavior.Engine {
	return s.engine
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Running reports whether a background goroutine is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// Start begins ticking w in the background. On error the stage must not
// proceed.
func (s *Scheduler) Start(w *world.World) error {
	if w == nil {
		return ErrNilWorld
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go s.run(ctx, w, done)

	s.logger.Debug("simulation started", "stage", w.StageID, "interval", s.interval)
	return nil
}

// Stop cancels the background goroutine and waits for it to exit. The world
// is never touched by the scheduler once Stop returns. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	s.logger.Debug("simulation stopped")
}

// MoveObstaclesTick runs one tick synchronously.
func (s *Scheduler) MoveObstaclesTick(w *world.World) {
	start := time.Now()
	var active int
	w.Do(func(w *world.World) {
		active = s.engine.Tick(w)
	})
	s.metrics.ObserveTick(time.Since(start), active)
}

func (s *Scheduler) run(ctx context.Context, w *world.World, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		// A cancelled context is only observed between ticks.
		if ctx.Err() != nil {
			return
		}
		s.MoveObstaclesTick(w)

		timer.Reset(s.interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}
