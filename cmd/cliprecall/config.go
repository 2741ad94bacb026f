package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliprecall/internal/client"
	"go.klb.dev/cliprecall/internal/history"
	"go.klb.dev/cliprecall/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPRECALL_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPRECALL_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("cliprecall")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/cliprecall/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "cliprecall"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPRECALL")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: info for service, debug for interactive)")
}

// addMatchFlag adds --fuzzy to commands that filter the history.
func addMatchFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("fuzzy", false, "fuzzy query matching, best match first")
}

func matchMode(v *viper.Viper) string {
	if v.GetBool("fuzzy") {
		return history.MatchFuzzy
	}
	return history.MatchSubstring
}

// newClient returns a daemon client using the command's match mode.
func newClient(v *viper.Viper) *client.Client {
	c := client.New()
	c.SetMatch(matchMode(v))
	return c
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// setupLogging reads logging flags from viper and configures slog on stderr.
func setupLogging(v *viper.Viper) {
	setupLoggingTo(os.Stderr, v)
}

func setupLoggingTo(w io.Writer, v *viper.Viper) {
	interactive := v.GetBool("no-background") || logging.IsTTY(w)
	resolveLogging(w, interactive, v.GetString("log-format"), v.GetString("log-level"))
}
