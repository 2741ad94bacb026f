//go:build !windows

package ipc

import (
	"net"
	"os"
	"path/filepath"
)

func socketPath() string {
	// Linux: prefer XDG_RUNTIME_DIR
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "cliprecall.sock")
	}
	// macOS / fallback
	return filepath.Join(os.TempDir(), "cliprecall.sock")
}

func listenIPC(path string) (net.Listener, error) {
	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	// Owner only: the socket hands out clipboard history.
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		return nil, err
	}
	return ln, nil
}

func dialIPC(path string) (net.Conn, error) {
	return net.Dial("unix", path)
}
