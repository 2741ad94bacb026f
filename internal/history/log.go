package history

import (
	"context"
	"log/slog"
)

// LogEntry logs a history event at INFO (kind, mime) and DEBUG (text preview
// up to 120 chars, or byte size for images).
func LogEntry(event string, e Entry, attrs ...any) {
	slog.Info(event, append([]any{"kind", e.Kind, "mime", e.MIME()}, attrs...)...)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	switch e.Kind {
	case KindText:
		slog.Debug("history entry", "preview", truncate(e.Text, previewRunes))
	case KindImage:
		slog.Debug("history entry", "format", e.Format, "size_bytes", len(e.Data))
	}
}

const previewRunes = 120

// truncate cuts s to at most n runes, marking the cut with "…".
func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos] + "…"
		}
		i++
	}
	return s
}
