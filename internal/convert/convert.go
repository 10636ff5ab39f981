// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns PDFs into plain-text files, dropping everything from
// the references or acknowledgments heading onward, and mirrors a whole input
// tree under an output root.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/refstrip/internal/boundary"
	"github.com/pdiddy/refstrip/internal/pdftext"
	"github.com/pdiddy/refstrip/pkg/types"
)

// Recorder receives the outcome of every document processed by ConvertTree.
type Recorder interface {
	Record(doc types.Document) error
}

// ConvertDocument extracts the text of the PDF at pdfPath, truncates it at the
// references heading when filter is set, and writes it to txtPath. Failures
// are reported on w and returned as a failed Document; they never panic or
// propagate.
func ConvertDocument(ext pdftext.Extractor, pdfPath, txtPath string, filter bool, w io.Writer) types.Document {
	doc := types.Document{
		SourcePath:  pdfPath,
		OutputPath:  txtPath,
		Cutoff:      types.NoCutoff,
		ConvertedAt: time.Now().UTC(),
	}
	name := filepath.Base(pdfPath)

	text, err := extractFile(ext, pdfPath)
	if err != nil {
		return failed(doc, name, err, w)
	}
	doc.TextLength = len(text)

	if filter {
		if offset, ok := boundary.Detect(text); ok {
			doc.Cutoff = offset
			text = text[:offset]
		}
	}

	if err := os.WriteFile(txtPath, []byte(text), 0o644); err != nil {
		return failed(doc, name, err, w)
	}

	fmt.Fprintf(w, "converted: %s\n", name)
	doc.Status = types.ConversionDone
	return doc
}

func failed(doc types.Document, name string, err error, w io.Writer) types.Document {
	fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	doc.Status = types.ConversionFailed
	doc.Error = err.Error()
	return doc
}

// extractFile opens the PDF, hands it to the extractor, and joins the pages.
// The file is closed before returning.
func extractFile(ext pdftext.Extractor, pdfPath string) (string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat PDF: %w", err)
	}

	pages, err := ext.ExtractPages(f, info.Size())
	if err != nil {
		return "", err
	}
	return joinPages(pages), nil
}

// joinPages concatenates pages, ending each with a line break.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}

// TextName returns the output file name for a document: name with its
// extension of length len(ext) replaced by the text extension.
func TextName(name, ext string) string {
	return name[:len(name)-len(ext)] + types.TextExtension
}

// IsDocument reports whether name ends in ext, ignoring case.
func IsDocument(name, ext string) bool {
	return len(name) >= len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
