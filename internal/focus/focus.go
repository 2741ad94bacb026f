// Package focus restores keyboard focus to another application and
// synthesizes keystrokes into it.
//
//	focus_robotgo.go: github.com/go-vgo/robotgo (default)
//	focus_stub.go:    built with -tags nofocus for headless builds
package focus

import (
	"errors"
	"runtime"
)

// ErrUnsupported means the platform offers no way to activate windows.
var ErrUnsupported = errors.New("window activation not supported")

// Replaced in tests.
var goos = runtime.GOOS

// Handle identifies a window by the process that owns it. Zero means none.
type Handle int

// Valid reports whether h refers to a window at all.
func (h Handle) Valid() bool { return h > 0 }

// Provider queries and changes the focused window.
type Provider interface {
	// Active returns the currently focused window.
	Active() (Handle, bool)

	// Activate raises h and gives it focus. It reports false when h is stale
	// or the platform refused.
	Activate(h Handle) bool
}

// Keyboard sends synthetic key gestures to whatever has focus.
type Keyboard interface {
	// SwitchPrevious sends the "previous application" gesture.
	SwitchPrevious() error

	// Paste sends the platform paste shortcut.
	Paste() error
}

// chord is one key with its modifiers.
type chord struct {
	key  string
	mods []string
}

func pasteChord(goos string) chord {
	if goos == "darwin" {
		return chord{key: "v", mods: []string{"cmd"}}
	}
	return chord{key: "v", mods: []string{"ctrl"}}
}

func switchChord(goos string) chord {
	if goos == "darwin" {
		return chord{key: "tab", mods: []string{"cmd"}}
	}
	return chord{key: "tab", mods: []string{"alt"}}
}

// checkDisplay reports whether synthetic input can reach a display. On
// Linux only X11 sessions are supported.
func checkDisplay(goos string, getenv func(string) string) error {
	switch goos {
	case "windows", "darwin":
		return nil
	default:
		if getenv("DISPLAY") == "" {
			return ErrUnsupported
		}
		return nil
	}
}
