package clip

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"go.klb.dev/cliprecall/internal/history"
)

const cliTimeout = time.Second

// toolset is one family of clipboard CLI tools. Image commands are nil when
// the tools only handle text.
type toolset struct {
	name       string
	readText   []string
	readImage  []string
	writeText  []string
	writeImage []string
}

var (
	wlClipboard = toolset{
		name:       "wl-clipboard",
		readText:   []string{"wl-paste", "--no-newline"},
		readImage:  []string{"wl-paste", "--type", "image/png"},
		writeText:  []string{"wl-copy"},
		writeImage: []string{"wl-copy", "--type", "image/png"},
	}
	xclip = toolset{
		name:       "xclip",
		readText:   []string{"xclip", "-out", "-selection", "clipboard"},
		readImage:  []string{"xclip", "-out", "-selection", "clipboard", "-target", "image/png"},
		writeText:  []string{"xclip", "-in", "-selection", "clipboard"},
		writeImage: []string{"xclip", "-in", "-selection", "clipboard", "-target", "image/png"},
	}
	xsel = toolset{
		name:      "xsel",
		readText:  []string{"xsel", "--output", "--clipboard"},
		writeText: []string{"xsel", "--input", "--clipboard"},
	}
	pbcopy = toolset{
		name:      "pbcopy",
		readText:  []string{"pbpaste"},
		writeText: []string{"pbcopy"},
	}
)

// Replaced in tests.
var (
	lookPath = exec.LookPath
	getenv   = os.Getenv
	goos     = runtime.GOOS
)

// cliBackend shells out to whichever clipboard tools are installed.
type cliBackend struct {
	tools toolset
}

// newCLIBackend detects the available tools. Wayland tools are preferred
// when a Wayland session is present.
func newCLIBackend() (Backend, bool) {
	var candidates []toolset
	switch goos {
	case "darwin":
		candidates = []toolset{pbcopy}
	case "windows":
		return nil, false
	default:
		if getenv("WAYLAND_DISPLAY") != "" {
			candidates = append(candidates, wlClipboard)
		}
		candidates = append(candidates, xclip, xsel)
	}
	for _, ts := range candidates {
		if hasCommands(ts.readText[0], ts.writeText[0]) {
			return &cliBackend{tools: ts}, true
		}
	}
	return nil, false
}

func hasCommands(names ...string) bool {
	for _, n := range names {
		if _, err := lookPath(n); err != nil {
			return false
		}
	}
	return true
}

func (b *cliBackend) Name() string { return b.tools.name }

func (b *cliBackend) Read() (history.Entry, bool) {
	var img, text []byte
	if b.tools.readImage != nil {
		// Fails whenever the clipboard has no image target; that is not an error.
		img, _ = run(b.tools.readImage, nil)
	}
	text, _ = run(b.tools.readText, nil)
	return pickEntry(img, text)
}

func (b *cliBackend) Write(e history.Entry) error {
	switch e.Kind {
	case history.KindText:
		_, err := run(b.tools.writeText, []byte(e.Text))
		return err
	case history.KindImage:
		if b.tools.writeImage == nil || e.Format != history.FormatPNG {
			return fmt.Errorf("%s cannot write %s", b.tools.name, e.MIME())
		}
		_, err := run(b.tools.writeImage, e.Data)
		return err
	default:
		return fmt.Errorf("unsupported entry kind: %s", e.Kind)
	}
}

// run executes argv with stdin under cliTimeout and returns its stdout.
func run(argv []string, stdin []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
		if err := cmd.Run(); err != nil {
			return nil, fmt.Errorf("%s: %w", argv[0], err)
		}
		return nil, nil
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", argv[0], err)
	}
	return out, nil
}
