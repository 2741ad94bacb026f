//go:build !nofocus

package focus

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-vgo/robotgo"
)

// Robot implements Provider and Keyboard with robotgo.
type Robot struct {
	pasteKeys  chord
	switchKeys chord
}

// New returns the robotgo-backed provider.
func New() *Robot {
	return &Robot{pasteKeys: pasteChord(goos), switchKeys: switchChord(goos)}
}

// Check reports whether window activation can work in this session. It is
// meant to be called once at startup.
func Check() error {
	return checkDisplay(goos, os.Getenv)
}

func (r *Robot) Active() (Handle, bool) {
	pid := robotgo.GetPID()
	if pid <= 0 || pid == os.Getpid() {
		return 0, false
	}
	return Handle(pid), true
}

func (r *Robot) Activate(h Handle) bool {
	if !h.Valid() {
		return false
	}
	exists, err := robotgo.PidExists(int(h))
	if err != nil || !exists {
		slog.Debug("focus target gone", "pid", int(h), "err", err)
		return false
	}
	if err := robotgo.ActivePid(int(h)); err != nil {
		slog.Warn("window activation failed", "pid", int(h), "err", err)
		return false
	}
	return true
}

func (r *Robot) SwitchPrevious() error { return tap(r.switchKeys) }
func (r *Robot) Paste() error          { return tap(r.pasteKeys) }

func tap(c chord) error {
	args := make([]any, len(c.mods))
	for i, m := range c.mods {
		args[i] = m
	}
	if err := robotgo.KeyTap(c.key, args...); err != nil {
		return fmt.Errorf("key tap %s+%s: %w", c.mods, c.key, err)
	}
	return nil
}
