package clip

import (
	"fmt"

	"golang.design/x/clipboard"

	"go.klb.dev/cliprecall/internal/history"
)

// systemBackend talks to the OS clipboard through golang.design/x/clipboard:
// CF_UNICODETEXT / CF_DIB on Windows, NSPasteboard on macOS, X11 selections
// on Linux.
type systemBackend struct{}

// newSystemBackend initialises the native clipboard. clipboard.Init is called
// here rather than in init() so that CLI sub-commands that never touch the
// clipboard don't fail on headless systems.
func newSystemBackend() (Backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return systemBackend{}, nil
}

func (systemBackend) Name() string { return "native" }

func (systemBackend) Read() (history.Entry, bool) {
	return pickEntry(clipboard.Read(clipboard.FmtImage), clipboard.Read(clipboard.FmtText))
}

func (systemBackend) Write(e history.Entry) error {
	var changed <-chan struct{}
	switch e.Kind {
	case history.KindText:
		changed = clipboard.Write(clipboard.FmtText, []byte(e.Text))
	case history.KindImage:
		if e.Format != history.FormatPNG {
			return fmt.Errorf("unsupported image format: %s", e.Format)
		}
		changed = clipboard.Write(clipboard.FmtImage, e.Data)
	default:
		return fmt.Errorf("unsupported entry kind: %s", e.Kind)
	}
	// clipboard.Write reports failure by returning a nil channel.
	if changed == nil {
		return fmt.Errorf("native %s write rejected", e.MIME())
	}
	// Image data may be re-encoded by the OS, so only text is compared.
	if e.Kind == history.KindText && string(clipboard.Read(clipboard.FmtText)) != e.Text {
		return fmt.Errorf("native text write not visible on read-back")
	}
	return nil
}
