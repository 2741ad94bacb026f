package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliprecall/internal/client"
	"go.klb.dev/cliprecall/internal/ipc"
	"go.klb.dev/cliprecall/internal/message"
)

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show the running daemon's state",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := client.New().Status()
			if err != nil {
				return fmt.Errorf("status: %w", err)
			}
			if v.GetBool("json") {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}
			printStatus(cmd.OutOrStdout(), st, ipc.SocketPath())
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "output raw JSON")
	addConfigFlag(cmd)

	return cmd
}

func printStatus(w io.Writer, st *message.Status, socket string) {
	pasteBack := "enabled"
	if !st.PasteBack {
		pasteBack = "disabled"
	}

	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Socket:\t%s\n", socket)
	_, _ = fmt.Fprintf(tw, "History file:\t%s\n", orDash(st.HistoryFile))
	_, _ = fmt.Fprintf(tw, "Entries:\t%d/%d\n", st.Length, st.MaxItems)
	_, _ = fmt.Fprintf(tw, "Version:\t%d\n", st.Version)
	_, _ = fmt.Fprintf(tw, "Clipboard:\t%s\n", st.Clipboard)
	_, _ = fmt.Fprintf(tw, "Paste-back:\t%s\n", pasteBack)
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
