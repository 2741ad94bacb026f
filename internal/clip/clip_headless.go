package clip

import "go.klb.dev/cliprecall/internal/history"

// headlessBackend is a no-op clipboard backend for environments without a
// display server (headless Linux servers, containers, etc.).
// It never yields content and refuses writes.
type headlessBackend struct{}

func (headlessBackend) Name() string                { return "headless (no-op)" }
func (headlessBackend) Read() (history.Entry, bool) { return history.Entry{}, false }
func (headlessBackend) Write(_ history.Entry) error { return ErrUnavailable }
