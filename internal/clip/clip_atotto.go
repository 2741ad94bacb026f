package clip

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"go.klb.dev/cliprecall/internal/history"
)

// atottoBackend is a text-only strategy over github.com/atotto/clipboard.
// It covers Windows, where there is no CLI tool strategy, and any platform
// where the library found a helper the CLI probe did not.
type atottoBackend struct{}

var errTextOnly = errors.New("strategy handles text only")

func newAtottoBackend() (Backend, bool) {
	if clipboard.Unsupported {
		return nil, false
	}
	return atottoBackend{}, true
}

func (atottoBackend) Name() string { return "atotto (text)" }

func (atottoBackend) Read() (history.Entry, bool) {
	s, err := clipboard.ReadAll()
	if err != nil || s == "" {
		return history.Entry{}, false
	}
	return history.NewText(s), true
}

func (atottoBackend) Write(e history.Entry) error {
	if e.Kind != history.KindText {
		return fmt.Errorf("%s: %w", e.MIME(), errTextOnly)
	}
	return clipboard.WriteAll(e.Text)
}
