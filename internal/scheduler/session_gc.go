package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/planopro/internal/logger"
)

const (
	// DefaultIdleThreshold is how long a sidebar state may go unused before
	// it is collected
	DefaultIdleThreshold = 30 * time.Minute

	// DefaultInterval is the time between two sweeps
	DefaultInterval = 5 * time.Minute
)

// Sweeper removes entries idle for longer than the given duration and
// reports how many it removed.
type Sweeper interface {
	Sweep(idle time.Duration) int
	Count() int
}

// SessionCollector periodically drops sidebar states of sessions that have
// gone quiet. Only the in-memory store needs it; Redis expires keys itself.
type SessionCollector struct {
	store     Sweeper
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewSessionCollector creates a new session collector
func NewSessionCollector(
	store Sweeper,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *SessionCollector {
	if threshold == 0 {
		threshold = DefaultIdleThreshold
	}
	// time.NewTicker panics on a non-positive interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &SessionCollector{
		store:     store,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic collection
func (sc *SessionCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(sc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sc.Collect()
			case <-sc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the collector. Safe to call more than once.
func (sc *SessionCollector) Stop() {
	sc.stopOnce.Do(func() { close(sc.stopCh) })
}

// Collect runs one sweep and returns the number of states removed
func (sc *SessionCollector) Collect() int {
	removed := sc.store.Sweep(sc.threshold)

	if removed > 0 {
		sc.logger.Info("session collection completed",
			logger.Int("sessions_removed", removed),
			logger.Int("sessions_active", sc.store.Count()),
			logger.Duration("idle_threshold", sc.threshold))
	} else {
		sc.logger.Debug("no idle sessions to collect")
	}

	return removed
}
