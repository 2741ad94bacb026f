package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"go.klb.dev/cliprecall/internal/capture"
	"go.klb.dev/cliprecall/internal/clip"
	"go.klb.dev/cliprecall/internal/focus"
	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/ipc"
	"go.klb.dev/cliprecall/internal/paste"
	"go.klb.dev/cliprecall/internal/service"
)

func newDaemonCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Record clipboard history and serve it to the CLI tools",
		Long: `Starts the clipboard capture loop and the local IPC socket used by
list/paste/clear/status/pick.

Paste-back needs a window system that allows activating windows and
synthesising keystrokes. Without one the daemon refuses to start unless
--no-paste is given, in which case history is still recorded.

Config file search order:
  /etc/cliprecall/cliprecall.toml
  $HOME/.config/cliprecall/cliprecall.toml
  path supplied via --config

Precedence (lowest → highest): defaults → config file → CLIPRECALL_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runDaemon(cmd.Context(), v) },
	}

	f := cmd.Flags()
	f.Int("max-items", history.DefaultMaxItems, "number of history entries to keep")
	f.Duration("poll-interval", capture.DefaultInterval, "clipboard polling interval")
	f.String("history-file", defaultHistoryFile(), "where history is persisted")
	f.Duration("settle-delay", paste.DefaultSettleDelay, "pause between clipboard write and window activation")
	f.Bool("no-paste", false, "record history only; disable paste-back")
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(ctx context.Context, v *viper.Viper) error {
	setupLogging(v)

	noPaste := v.GetBool("no-paste")
	if !noPaste {
		if err := focus.Check(); err != nil {
			return fmt.Errorf("paste-back unavailable (run with --no-paste to record only): %w", err)
		}
	}

	maxItems := v.GetInt("max-items")
	if maxItems <= 0 {
		return fmt.Errorf("max-items must be positive, got %d", maxItems)
	}

	store := history.New(v.GetString("history-file"), maxItems)
	if err := store.Load(); err != nil {
		slog.Error("history load failed; starting empty", "path", store.Path(), "err", err)
	}

	cb := clip.New()

	// paster stays a nil interface when paste-back is off so the service
	// can tell.
	var (
		paster service.Paster
		ctrl   *paste.Controller
	)
	if !noPaste {
		robot := focus.New()
		ctrl = paste.New(cb, robot, robot, v.GetDuration("settle-delay"))
		paster = ctrl
	}

	ln, err := ipc.Listen()
	if err != nil {
		return fmt.Errorf("ipc listen: %w", err)
	}

	slog.Info("cliprecall daemon starting",
		"version", Version,
		"history_file", store.Path(),
		"max_items", maxItems,
		"entries", store.Len(),
		"clipboard", cb.Name(),
		"paste_back", !noPaste,
		"socket", ipc.SocketPath(),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return capture.New(cb, store, v.GetDuration("poll-interval")).Run(ctx)
	})
	g.Go(func() error {
		return service.New(store, paster, cb.Name()).Serve(ctx, ln)
	})
	err = g.Wait()

	if ctrl != nil {
		ctrl.Wait()
	}
	if serr := store.Save(); serr != nil {
		slog.Error("final history save failed", "path", store.Path(), "err", serr)
	}
	slog.Info("cliprecall daemon stopped")
	return err
}
