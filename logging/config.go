package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const logFilePrefix = "kits-"

// WeeklyFile writes log lines to one file per ISO week, opening a numbered
// continuation file when the size cap is reached
type WeeklyFile struct {
	dir       string
	maxSize   int64
	retention time.Duration

	mu      sync.Mutex
	file    *os.File
	week    string
	part    int
	written int64

	stop chan struct{}
	done chan struct{}
}

// NewWeeklyFile creates the directory and opens the file for the current week
func NewWeeklyFile(dir string, retentionWeeks int, maxSize int64) (*WeeklyFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	wf := &WeeklyFile{
		dir:       dir,
		maxSize:   maxSize,
		retention: time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	wf.mu.Lock()
	err := wf.open(weekKey(time.Now()), 0)
	wf.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go wf.cleanupLoop()
	return wf, nil
}

// weekKey returns the ISO week as YYYY-Www
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (wf *WeeklyFile) fileName(week string, part int) string {
	if part == 0 {
		return fmt.Sprintf("%s%s.log", logFilePrefix, week)
	}
	return fmt.Sprintf("%s%s_%02d.log", logFilePrefix, week, part)
}

// open switches to the given week/part file; caller holds mu
func (wf *WeeklyFile) open(week string, part int) error {
	if wf.file != nil {
		if err := wf.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
		wf.file = nil
	}

	for {
		path := filepath.Join(wf.dir, wf.fileName(week, part))
		info, err := os.Stat(path)
		if err == nil && wf.maxSize > 0 && info.Size() >= wf.maxSize {
			part++
			continue
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}

		wf.file = f
		wf.week = week
		wf.part = part
		wf.written = 0
		if info != nil {
			wf.written = info.Size()
		}
		return nil
	}
}

// Write implements io.Writer
func (wf *WeeklyFile) Write(p []byte) (int, error) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	week := weekKey(time.Now())
	switch {
	case wf.file == nil || week != wf.week:
		if err := wf.open(week, 0); err != nil {
			return 0, err
		}
	case wf.maxSize > 0 && wf.written+int64(len(p)) > wf.maxSize:
		if err := wf.open(week, wf.part+1); err != nil {
			return 0, err
		}
	}

	n, err := wf.file.Write(p)
	wf.written += int64(n)
	return n, err
}

func (wf *WeeklyFile) cleanupLoop() {
	defer close(wf.done)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-wf.stop:
			return
		case <-ticker.C:
			if _, err := wf.removeExpired(time.Now()); err != nil {
				fmt.Fprintf(os.Stderr, "log cleanup failed: %v\n", err)
			}
		}
	}
}

// removeExpired deletes log files last modified before now minus retention
func (wf *WeeklyFile) removeExpired(now time.Time) (int, error) {
	entries, err := os.ReadDir(wf.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := now.Add(-wf.retention)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(wf.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Close stops the cleanup goroutine and closes the current file
func (wf *WeeklyFile) Close() error {
	select {
	case <-wf.stop:
	default:
		close(wf.stop)
	}
	<-wf.done

	wf.mu.Lock()
	defer wf.mu.Unlock()
	if wf.file == nil {
		return nil
	}
	err := wf.file.Close()
	wf.file = nil
	return err
}

// multiHandler fans records out to several handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
