// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/refstrip/internal/ledger"
	"github.com/pdiddy/refstrip/pkg/types"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List or export the outcomes recorded by earlier runs",
	Long: `Ledger reads the SQLite file written when a run is given --ledger and
lists each document's outcome: where its text was cut, or why it failed.
Use --format yaml or json to export the records.`,
	Args: cobra.NoArgs,
	RunE: runLedger,
}

func runLedger(cmd *cobra.Command, args []string) error {
	path := viper.GetString("ledger")
	if path == "" {
		return fmt.Errorf("no ledger configured: pass --ledger or set ledger in refstrip.yaml")
	}

	status, _ := cmd.Flags().GetString("status")
	truncated, _ := cmd.Flags().GetBool("truncated")
	format, _ := cmd.Flags().GetString("format")

	opts := ledger.ListOptions{
		Status:    types.ConversionStatus(status),
		Truncated: truncated,
	}

	l, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	switch format {
	case "table", "":
		docs, err := l.List(ctx, opts)
		if err != nil {
			return err
		}
		total, err := l.Summarize(ctx)
		if err != nil {
			return err
		}
		return formatLedgerTable(docs, total, out)
	case "yaml":
		return l.ExportYAML(ctx, opts, out)
	case "json":
		return l.ExportJSON(ctx, opts, out)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
}

// formatLedgerTable prints docs followed by the counts for the whole ledger,
// which differ from len(docs) when a filter is applied.
func formatLedgerTable(docs []types.Document, total ledger.Summary, w io.Writer) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-9s  %-10s  %-10s  %s\n", "Status", "Kept", "Length", "Source")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, d := range docs {
		kept := "all"
		if d.Truncated() {
			kept = fmt.Sprintf("%d", d.Cutoff)
		}
		if d.Status == types.ConversionFailed {
			kept = "-"
		}
		fmt.Fprintf(w, "%-9s  %-10s  %-10d  %s\n", d.Status, kept, d.TextLength, d.SourcePath)
		if d.Error != "" {
			fmt.Fprintf(w, "           %s\n", d.Error)
		}
	}

	fmt.Fprintf(w, "\n%d of %d documents (%d converted, %d failed, %d truncated)\n",
		len(docs), total.Total(), total.Converted, total.Failed, total.Truncated)
	return nil
}

func init() {
	ledgerCmd.Flags().String("status", "", "only show documents with this status: converted or failed")
	ledgerCmd.Flags().Bool("truncated", false, "only show documents whose text was cut")
	ledgerCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(ledgerCmd)
}
