// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refstrip/pkg/types"
)

// Export is the document written by ExportYAML and ExportJSON. Summary
// counts the exported documents only.
type Export struct {
	Summary   Summary          `json:"summary" yaml:"summary"`
	Documents []types.Document `json:"documents" yaml:"documents"`
}

func (l *Ledger) export(ctx context.Context, opts ListOptions) (Export, error) {
	docs, err := l.List(ctx, opts)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	return Export{Summary: summarize(docs), Documents: docs}, nil
}

func summarize(docs []types.Document) Summary {
	var s Summary
	for _, d := range docs {
		switch d.Status {
		case types.ConversionDone:
			s.Converted++
		case types.ConversionFailed:
			s.Failed++
		}
		if d.Truncated() {
			s.Truncated++
		}
	}
	return s
}

// ExportYAML writes the ledger to w as YAML.
func (l *Ledger) ExportYAML(ctx context.Context, opts ListOptions, w io.Writer) error {
	e, err := l.export(ctx, opts)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the ledger to w as indented JSON.
func (l *Ledger) ExportJSON(ctx context.Context, opts ListOptions, w io.Writer) error {
	e, err := l.export(ctx, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
