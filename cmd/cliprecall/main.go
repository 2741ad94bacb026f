// cliprecall: clipboard history with paste-back.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/cliprecall/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "cliprecall",
		Short: "Clipboard history with paste-back",
		Long: `cliprecall records every distinct text or image placed on the system
clipboard into a bounded, persisted history and pastes old entries back into
the application you were working in.

Run "cliprecall daemon" once per session. Use "cliprecall pick" (bind it to a
hotkey in your window manager) or "cliprecall list/paste/clear/status" to work
with the history of the running daemon.

Config file search order (first found wins):
  /etc/cliprecall/cliprecall.toml
  $HOME/.config/cliprecall/cliprecall.toml
  path supplied via --config

All flags can be set via CLIPRECALL_<FLAG> env vars or config-file keys.
See "cliprecall daemon --help" for the full flag reference.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newDaemonCmd(),
		newListCmd(),
		newPasteCmd(),
		newClearCmd(),
		newStatusCmd(),
		newPickCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cliprecall %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(w io.Writer, interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("info")
		}
	}
	logging.Setup(w, format, level)
}
