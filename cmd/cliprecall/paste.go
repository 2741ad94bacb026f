package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliprecall/internal/client"
	"go.klb.dev/cliprecall/internal/focus"
)

func newPasteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "paste <index>",
		Short: "Paste a history entry into the focused window",
		Long: `Asks the daemon to put history entry <index> back on the clipboard and
paste it into the target window.

The target is the window focused when the command starts, which is the
window a window-manager hotkey was pressed in. --window overrides it. When
no window can be determined the daemon switches to the previously focused
application (alt+tab / cmd+tab) before sending the paste keystroke.

Indexes refer to the list filtered by --query, as printed by
"cliprecall list <query>". With --version the daemon refuses the paste if the
history changed since that listing.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index < 0 {
				return fmt.Errorf("index must be a non-negative integer, got %q", args[0])
			}
			window := targetWindow(v.GetInt("window"), focus.New())
			return runPaste(newClient(v), index, window, v)
		},
	}

	f := cmd.Flags()
	f.String("query", "", "filter the history before indexing")
	f.Int("window", 0, "window handle (process id) to paste into; 0 = the focused window")
	f.Uint64("version", 0, "history version the index was listed at; 0 = no check")
	addMatchFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

// targetWindow returns window when set, else the window focused right now.
// 0 leaves the choice to the daemon's alt+tab fallback.
func targetWindow(window int, p focus.Provider) int {
	if window > 0 {
		return window
	}
	if h, ok := p.Active(); ok {
		return int(h)
	}
	return 0
}

func runPaste(c *client.Client, index, window int, v *viper.Viper) error {
	if err := c.Paste(v.GetString("query"), index, window, v.GetUint64("version")); err != nil {
		return fmt.Errorf("paste: %w", err)
	}
	return nil
}
