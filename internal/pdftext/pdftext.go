// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts the plain text of each page of a PDF. Two backends
// are available: an in-process parser and poppler's pdftotext.
package pdftext

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/refstrip/pkg/types"
)

// ErrUnreadable is wrapped by every error caused by a document that cannot be
// parsed, as opposed to a missing tool.
var ErrUnreadable = errors.New("unreadable document")

// Extractor turns a PDF into the text of its pages, in page order.
type Extractor interface {
	ExtractPages(r io.ReaderAt, size int64) ([]string, error)
}

// ForBackend returns the extractor for the configured backend.
func ForBackend(b types.ExtractionBackend) (Extractor, error) {
	switch b {
	case types.BackendNative, "":
		return NewNativeExtractor(), nil
	case types.BackendPdftotext:
		p, err := NewPdftotextExtractor()
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q (want %s or %s)",
			b, types.BackendNative, types.BackendPdftotext)
	}
}

func unreadable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnreadable, fmt.Sprintf(format, args...))
}
