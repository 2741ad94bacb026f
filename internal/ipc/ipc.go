// Package ipc provides the local socket used by CLI tools (list/paste/clear/
// status/pick) to talk to a running cliprecall daemon.
//
// The channel carries the newline-JSON protocol from package message: a
// Unix domain socket on Linux/macOS, a named pipe on Windows.
package ipc

import (
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"
)

// ErrNotRunning is returned by Dial when no daemon is listening.
var ErrNotRunning = errors.New("cliprecall daemon not running")

// SocketPath returns the platform-appropriate path for the IPC socket.
//
//   - Linux:   $XDG_RUNTIME_DIR/cliprecall.sock, else $TMPDIR/cliprecall.sock
//   - macOS:   $TMPDIR/cliprecall.sock
//   - Windows: \\.\pipe\cliprecall
//
// $CLIPRECALL_SOCKET overrides all of these.
func SocketPath() string {
	if s := os.Getenv("CLIPRECALL_SOCKET"); s != "" {
		return s
	}
	return socketPath()
}

// IsRunning reports whether a daemon appears to be listening on the IPC
// socket. It does a cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := dialIPC(SocketPath())
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen creates and returns a net.Listener on the IPC socket path, removing
// any stale socket file first.
func Listen() (net.Listener, error) {
	path := SocketPath()
	if runtime.GOOS != "windows" {
		if IsRunning() {
			return nil, fmt.Errorf("another daemon is listening on %s", path)
		}
		// Remove stale socket from a previous (crashed) run.
		_ = os.Remove(path)
	}
	return listenIPC(path)
}

// Dial connects to the daemon.
func Dial() (net.Conn, error) {
	c, err := dialIPC(SocketPath())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRunning, err)
	}
	return c, nil
}
