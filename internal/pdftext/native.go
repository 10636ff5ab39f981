// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"io"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor parses PDFs in-process with github.com/ledongthuc/pdf.
type NativeExtractor struct{}

// NewNativeExtractor creates the in-process extractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// ExtractPages returns the plain text of every page. Pages without content
// yield an empty string so that page positions are kept. The parser panics on
// some malformed files; those panics are returned as ErrUnreadable.
func (n *NativeExtractor) ExtractPages(r io.ReaderAt, size int64) (pages []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			pages, err = nil, unreadable("parser panic: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, unreadable("open PDF: %v", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, unreadable("page %d: %v", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
