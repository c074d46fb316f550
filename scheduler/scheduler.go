// Package scheduler refreshes the record snapshot on a fixed interval and
// warns when the data goes stale.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giygas/kits-report-api/interfaces"
	"github.com/giygas/kits-report-api/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleFactor is how many missed refreshes make the data stale
const staleFactor = 3

// Scheduler runs periodic reloads using dependency injection
type Scheduler struct {
	dataStore interfaces.DataStore
	reloader  interfaces.Reloader
	interval  time.Duration
	scheduler *gocron.Scheduler

	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewScheduler creates a scheduler that reloads every interval
func NewScheduler(dataStore interfaces.DataStore, reloader interfaces.Reloader, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		dataStore: dataStore,
		reloader:  reloader,
		interval:  interval,
		scheduler: gocron.NewScheduler(time.Local),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules the periodic reload, then performs the initial load.
// A failed initial load is returned but the schedule keeps running, so the
// next tick retries.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid refresh interval: %s", s.interval)
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().WaitForSchedule().Do(s.reload)
	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()
	s.startStalenessMonitoring()

	if err := s.reloader.Reload(s.ctx); err != nil {
		return fmt.Errorf("initial data load failed: %w", err)
	}
	return nil
}

// Stop halts the schedule, the monitor and any in-flight reload
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.scheduler.Stop()
	})
}

func (s *Scheduler) reload() {
	if err := s.reloader.Reload(s.ctx); err != nil {
		logging.Error("Scheduled reload failed", "error", err)
	}
}

// isStale reports whether the last successful reload is older than
// staleFactor refresh intervals. A store that never loaded is stale.
func (s *Scheduler) isStale(now time.Time) bool {
	lastUpdate := s.dataStore.GetLastUpdated()
	if lastUpdate.IsZero() {
		return true
	}
	return now.Sub(lastUpdate) > staleFactor*s.interval
}

func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case now := <-ticker.C:
				if s.isStale(now) {
					logging.Warn("Sheet data is stale",
						"last_updated", s.dataStore.GetLastUpdated(),
						"refresh_interval", s.interval.String(),
					)
				}
			}
		}
	}()
}
