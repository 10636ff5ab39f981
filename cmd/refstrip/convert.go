// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refstrip/internal/convert"
	"github.com/pdiddy/refstrip/internal/ledger"
	"github.com/pdiddy/refstrip/internal/pdftext"
)

// runConvert converts the whole input tree. Documents that fail are reported
// but do not change the exit status.
func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig()
	if err != nil {
		return err
	}

	ext, err := pdftext.ForBackend(cfg.Backend)
	if err != nil {
		return err
	}

	var rec convert.Recorder
	if cfg.Ledger != "" {
		l, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer l.Close()
		rec = l
	}

	out := cmd.OutOrStdout()
	if _, err := convert.ConvertTree(ext, cfg, rec, out); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nConversion process completed.")
	return nil
}
