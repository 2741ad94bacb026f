// Package paste implements paste-back: put a history entry on the clipboard,
// return focus to the window the user came from and send it a paste
// keystroke.
package paste

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/cliprecall/internal/focus"
	"go.klb.dev/cliprecall/internal/history"
)

const (
	// DefaultSettleDelay lets the OS clipboard propagate a write before the
	// target application reads it.
	DefaultSettleDelay = 50 * time.Millisecond

	activateWait = 100 * time.Millisecond
	switchWait   = 50 * time.Millisecond
)

// Writer puts an entry on the system clipboard. clip.Clipboard tries its
// strategies in order before reporting failure.
type Writer interface {
	Write(history.Entry) error
}

// Controller runs paste-back sequences, one at a time.
type Controller struct {
	clipboard Writer
	focus     focus.Provider
	keys      focus.Keyboard
	settle    time.Duration
	sleep     func(time.Duration)

	mu sync.Mutex // serialises sequences; the OS clipboard is shared
	wg sync.WaitGroup
}

// New returns a Controller. settle <= 0 selects DefaultSettleDelay.
func New(w Writer, p focus.Provider, k focus.Keyboard, settle time.Duration) *Controller {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Controller{
		clipboard: w,
		focus:     p,
		keys:      k,
		settle:    settle,
		sleep:     time.Sleep,
	}
}

// Paste runs the full sequence synchronously. Every failure is logged and
// aborts the remaining steps; the returned error is informational.
//
// A clipboard write failure aborts before focus is touched so stale content
// is never pasted. A missing, stale or unactivatable target falls back to the
// "previous application" gesture.
func (c *Controller) Paste(e history.Entry, target focus.Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.clipboard.Write(e); err != nil {
		slog.Error("paste aborted: clipboard write failed", "mime", e.MIME(), "err", err)
		return fmt.Errorf("clipboard write: %w", err)
	}
	c.sleep(c.settle)

	if target.Valid() && c.focus.Activate(target) {
		slog.Debug("focus restored", "pid", int(target))
		c.sleep(activateWait)
	} else {
		if target.Valid() {
			slog.Info("focus restore failed, switching to previous application", "pid", int(target))
		}
		if err := c.keys.SwitchPrevious(); err != nil {
			slog.Error("paste aborted: switch to previous application failed", "err", err)
			return fmt.Errorf("switch previous: %w", err)
		}
		c.sleep(switchWait)
	}

	if err := c.keys.Paste(); err != nil {
		slog.Error("paste keystroke failed", "err", err)
		return fmt.Errorf("paste keystroke: %w", err)
	}
	history.LogEntry("entry pasted", e, "target", int(target))
	return nil
}

// Dispatch runs Paste on its own goroutine and returns immediately, so the
// caller never waits on settle or activation delays. An in-flight sequence
// cannot be cancelled.
func (c *Controller) Dispatch(e history.Entry, target focus.Handle) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		_ = c.Paste(e, target)
	}()
}

// Wait blocks until every dispatched sequence has finished.
func (c *Controller) Wait() { c.wg.Wait() }
