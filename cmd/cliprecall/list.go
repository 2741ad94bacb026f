package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliprecall/internal/client"
	"go.klb.dev/cliprecall/internal/history"
)

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Print the clipboard history, most recent first",
		Long: `Prints the history of the running daemon. An optional query keeps only
entries containing it (case-insensitive). The INDEX column is what
"cliprecall paste" expects when given the same --query. Pass the printed
version as "cliprecall paste --version" so the paste is refused if new
clipboard content shifted the indexes in between.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runList(cmd.OutOrStdout(), newClient(v), query, v)
		},
	}

	f := cmd.Flags()
	f.Int("limit", 0, "show at most this many entries (0 = all)")
	f.Bool("json", false, "output raw JSON")
	addMatchFlag(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runList(w io.Writer, c *client.Client, query string, v *viper.Viper) error {
	resp, err := c.List(query, v.GetInt("limit"), 0)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}

	if v.GetBool("json") {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listing{Version: resp.Version, Total: resp.Total, Entries: resp.Entries})
	}
	printEntries(w, resp.Entries, resp.Version, resp.Total, query)
	return nil
}

type listing struct {
	Version uint64          `json:"version"`
	Total   int             `json:"total"`
	Entries []history.Entry `json:"entries"`
}

func printEntries(w io.Writer, entries []history.Entry, version uint64, total int, query string) {
	if len(entries) == 0 {
		if strings.TrimSpace(query) == "" {
			fmt.Fprintln(w, "History is empty.")
		} else {
			fmt.Fprintf(w, "No entries match %q (%d items).\n", query, total)
		}
		return
	}

	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "INDEX\tKIND\tENTRY\n")
	_, _ = fmt.Fprintf(tw, "-----\t----\t-----\n")
	for i, e := range entries {
		first, _, more := strings.Cut(history.Label(e), "\n")
		if more {
			first += " ..."
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", i, e.Kind, first)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nversion %d\n", version)
}
