// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/refstrip/internal/boundary"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE...",
	Short: "Report where references would be cut in existing text files",
	Long: `Detect runs the heading detector over plain-text files and prints the
byte offset of the earliest references or acknowledgments heading, or "none".
Use it to check the heading table against text produced by other tools.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show")
		for _, path := range args {
			if err := detectFile(path, show, cmd.OutOrStdout()); err != nil {
				return err
			}
		}
		return nil
	},
}

// detectFile prints the cut point of one file, followed by the first line
// that would be dropped when show is set.
func detectFile(path string, show bool, w io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	offset, ok := boundary.Detect(text)
	if !ok {
		fmt.Fprintf(w, "%s: none (%d bytes kept)\n", path, len(text))
		return nil
	}
	fmt.Fprintf(w, "%s: %d (%d of %d bytes kept)\n", path, offset, offset, len(text))
	if show {
		fmt.Fprintf(w, "  > %s\n", firstLine(text[offset:]))
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' || r == '\r' {
			return s[:i]
		}
	}
	return s
}

func init() {
	detectCmd.Flags().Bool("show", false, "print the heading line that starts the cut")

	rootCmd.AddCommand(detectCmd)
}
