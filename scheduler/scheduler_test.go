package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giygas/kits-report-api/data"
	"github.com/giygas/kits-report-api/kitsparser/entities"
)

type mockReloader struct {
	calls atomic.Int32
	err   error
	store *data.DataContainer
}

func (m *mockReloader) Reload(ctx context.Context) error {
	m.calls.Add(1)
	if m.err != nil {
		return m.err
	}
	if m.store != nil {
		m.store.UpdateData([]entities.Record{{Pharmacy: "A", SurgeryDateKey: "2024-01-01"}}, []string{"A"}, nil)
	}
	return nil
}

func TestStartPerformsInitialLoad(t *testing.T) {
	store := data.NewDataContainer()
	reloader := &mockReloader{store: store}
	s := NewScheduler(store, reloader, time.Hour)
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := reloader.calls.Load(); got != 1 {
		t.Errorf("Expected 1 initial reload, got %d", got)
	}
	if len(store.GetRecords()) != 1 {
		t.Error("Initial load should populate the store")
	}
}

func TestStartReturnsInitialLoadError(t *testing.T) {
	store := data.NewDataContainer()
	loadErr := errors.New("sheet unreachable")
	s := NewScheduler(store, &mockReloader{err: loadErr}, time.Hour)
	defer s.Stop()

	err := s.Start()
	if !errors.Is(err, loadErr) {
		t.Fatalf("Expected wrapped load error, got %v", err)
	}
	if !s.scheduler.IsRunning() {
		t.Error("Schedule should keep running after a failed initial load")
	}
}

func TestStartRejectsInvalidInterval(t *testing.T) {
	s := NewScheduler(data.NewDataContainer(), &mockReloader{}, 0)
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Error("Expected error for zero interval")
	}
}

func TestScheduledReloadRuns(t *testing.T) {
	store := data.NewDataContainer()
	reloader := &mockReloader{store: store}
	s := NewScheduler(store, reloader, 50*time.Millisecond)
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for reloader.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := reloader.calls.Load(); got < 2 {
		t.Errorf("Expected at least one scheduled reload, got %d calls", got)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := NewScheduler(data.NewDataContainer(), &mockReloader{}, time.Hour)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	s.Stop()
	s.Stop()

	if s.scheduler.IsRunning() {
		t.Error("Scheduler should be stopped")
	}
	if s.ctx.Err() == nil {
		t.Error("Context should be canceled after Stop")
	}
}

func TestIsStale(t *testing.T) {
	store := data.NewDataContainer()
	s := NewScheduler(store, &mockReloader{}, 15*time.Minute)
	defer s.Stop()

	if !s.isStale(time.Now()) {
		t.Error("A store that never loaded should be stale")
	}

	store.UpdateData(nil, nil, nil)
	loaded := store.GetLastUpdated()

	tests := []struct {
		name  string
		now   time.Time
		stale bool
	}{
		{"just loaded", loaded, false},
		{"two intervals", loaded.Add(30 * time.Minute), false},
		{"exactly three intervals", loaded.Add(45 * time.Minute), false},
		{"past three intervals", loaded.Add(46 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.isStale(tt.now); got != tt.stale {
				t.Errorf("isStale() = %v, want %v", got, tt.stale)
			}
		})
	}
}
