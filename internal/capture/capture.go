// Package capture polls the system clipboard and records changes in the
// history store.
package capture

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/cliprecall/internal/history"
)

// DefaultInterval is short enough to feel responsive and long enough not to
// spin on the OS clipboard API.
const DefaultInterval = 250 * time.Millisecond

// Source yields the current clipboard content. Read reports false when
// nothing usable is on the clipboard or the read failed.
type Source interface {
	Read() (history.Entry, bool)
}

// Store is the part of history.Store the loop writes to.
type Store interface {
	Add(history.Entry) bool
	Save() error
}

// Loop polls a Source at a fixed interval and feeds changes to a Store.
type Loop struct {
	src      Source
	store    Store
	interval time.Duration

	// last is the value seen on the previous tick. It lets unchanged ticks
	// skip the store lock entirely.
	last    history.Entry
	hasLast bool
}

// New creates the loop but does not start it. interval <= 0 selects
// DefaultInterval.
func New(src Source, store Store, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{src: src, store: store, interval: interval}
}

// Run polls until ctx is cancelled, which it observes within one interval.
// It blocks; call in a goroutine.
func (l *Loop) Run(ctx context.Context) error {
	slog.Info("clipboard capture started", "interval", l.interval)

	t := time.NewTicker(l.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("clipboard capture stopped")
			return nil
		case <-t.C:
			l.poll()
		}
	}
}

// poll runs one tick. It reports whether the store accepted a new entry.
func (l *Loop) poll() bool {
	e, ok := l.src.Read()
	if !ok {
		return false
	}
	if l.hasLast && e.Equal(l.last) {
		return false
	}
	l.last, l.hasLast = e, true

	if e.Blank() || !l.store.Add(e) {
		return false
	}
	history.LogEntry("clipboard captured", e)
	if err := l.store.Save(); err != nil {
		slog.Error("history save failed", "err", err)
	}
	return true
}
