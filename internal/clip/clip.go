// Package clip provides access to the system clipboard for the capture loop
// and the paste-back controller. Several strategies are available:
//
//	clip_system.go:   golang.design/x/clipboard (native formats)
//	clip_cli.go:      wl-clipboard / xclip / xsel / pbcopy via exec
//	clip_atotto.go:   github.com/atotto/clipboard, text only, when no CLI tool is found
//	clip_headless.go: no-op stand-in when neither works
//
// New picks the best reader and chains every usable strategy for writes, so
// a failed native image write falls back to the CLI tools.
package clip

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png" // registers the PNG decoder
	"log/slog"
	"strings"

	"go.klb.dev/cliprecall/internal/history"
)

// ErrUnavailable is returned by writes when no clipboard strategy exists.
var ErrUnavailable = errors.New("clipboard unavailable")

// Backend is the interface every clipboard strategy satisfies.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard content, preferring an image over
	// text when both are present. It reports false when the clipboard is
	// empty, unreadable or holds only unsupported formats; it never fails.
	Read() (history.Entry, bool)

	// Write replaces the clipboard content with e.
	Write(e history.Entry) error
}

// Clipboard reads through one backend and writes through an ordered chain.
type Clipboard struct {
	reader  Backend
	writers []Backend
}

// New probes the platform and returns the clipboard to use. It never fails:
// with no usable strategy it returns a headless clipboard and logs a warning.
func New() *Clipboard {
	var backends []Backend
	if sys, err := newSystemBackend(); err != nil {
		slog.Warn("native clipboard unavailable", "err", err)
	} else {
		backends = append(backends, sys)
	}
	if cli, ok := newCLIBackend(); ok {
		backends = append(backends, cli)
	} else if txt, ok := newAtottoBackend(); ok {
		backends = append(backends, txt)
	}
	if len(backends) == 0 {
		slog.Warn("no clipboard strategy available, running headless")
		backends = append(backends, headlessBackend{})
	}
	return Chain(backends...)
}

// Chain returns a Clipboard that reads from the first backend and tries each
// backend in order when writing.
func Chain(backends ...Backend) *Clipboard {
	if len(backends) == 0 {
		backends = []Backend{headlessBackend{}}
	}
	return &Clipboard{reader: backends[0], writers: backends}
}

// Name lists the strategies in write order.
func (c *Clipboard) Name() string {
	names := make([]string, len(c.writers))
	for i, w := range c.writers {
		names[i] = w.Name()
	}
	return strings.Join(names, " → ")
}

// Read implements Backend.
func (c *Clipboard) Read() (history.Entry, bool) { return c.reader.Read() }

// Write tries each strategy in order and stops at the first success. When
// every strategy fails the joined errors are returned.
func (c *Clipboard) Write(e history.Entry) error {
	var errs []error
	for _, w := range c.writers {
		err := w.Write(e)
		if err == nil {
			slog.Debug("clipboard written", "strategy", w.Name(), "mime", e.MIME())
			return nil
		}
		slog.Warn("clipboard write strategy failed", "strategy", w.Name(), "mime", e.MIME(), "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
	}
	return errors.Join(errs...)
}

// pickEntry chooses what a read yields. Images win over text because copying
// an image usually also publishes a text placeholder. An image that does not
// decode falls back to the text content for the same read.
func pickEntry(img, text []byte) (history.Entry, bool) {
	if len(img) > 0 {
		_, _, err := image.DecodeConfig(bytes.NewReader(img))
		if err == nil {
			return history.NewImage(img, history.FormatPNG), true
		}
		slog.Debug("clipboard image undecodable, using text", "err", err)
	}
	if len(text) > 0 {
		return history.NewText(string(text)), true
	}
	return history.Entry{}, false
}
