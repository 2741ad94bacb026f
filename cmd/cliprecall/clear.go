package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliprecall/internal/client"
)

func newClearCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "clear",
		Short:   "Delete the whole clipboard history",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !v.GetBool("yes") && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Clear all clipboard history?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			if _, err := client.New().Clear(); err != nil {
				return fmt.Errorf("clear: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
	addConfigFlag(cmd)

	return cmd
}

// confirm asks a yes/no question; anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
