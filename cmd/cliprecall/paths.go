package main

import (
	"os"
	"path/filepath"
	"strings"
)

// envKeyReplacer maps flag names to env var suffixes: history-file →
// CLIPRECALL_HISTORY_FILE.
var envKeyReplacer = strings.NewReplacer("-", "_")

// defaultHistoryFile returns $XDG_DATA_HOME/cliprecall/history.json, falling
// back to ~/.local/share and finally the working directory.
func defaultHistoryFile() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "cliprecall", "history.json")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "cliprecall", "history.json")
	}
	return "cliprecall-history.json"
}
