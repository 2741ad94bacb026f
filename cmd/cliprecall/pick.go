package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/ipc"
	"go.klb.dev/cliprecall/internal/picker"
)

func newPickCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Browse, search and paste history in the terminal",
		Long: `Opens an interactive picker over the running daemon's history.

  type        filter (case-insensitive; --fuzzy for subsequence matching)
  up/down     move selection
  enter       paste the selected entry and exit
  ctrl+x      clear history (asks for confirmation)
  esc         exit

Bind "cliprecall pick" to a hotkey in your window manager or terminal.
Logs go to --log-file (discarded by default) so they do not corrupt the
screen.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runPick(v) },
	}

	f := cmd.Flags()
	f.Int("window", 0, "window handle (process id) to paste into; 0 = previous application")
	f.String("log-file", "", "write logs to this file")
	addMatchFlag(cmd)
	f.String("log-format", "json", "log format: auto|text|json")
	f.String("log-level", "", "log level: debug|info|warn|error")
	addConfigFlag(cmd)

	return cmd
}

func runPick(v *viper.Viper) error {
	if !ipc.IsRunning() {
		return ipc.ErrNotRunning
	}

	var logw io.Writer = io.Discard
	if path := v.GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
		logw = f
	}
	setupLoggingTo(logw, v)

	filter, err := history.Matcher(matchMode(v))
	if err != nil {
		return err
	}
	m := picker.New(newClient(v), v.GetInt("window"), filter)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	return nil
}
