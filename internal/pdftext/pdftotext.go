// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// PdftotextExtractor pipes PDFs through poppler's pdftotext, which separates
// pages with form feeds.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor returns an extractor backed by the pdftotext binary.
// It fails when pdftotext is not on PATH.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	return newPdftotextExtractor(&osExecutor{})
}

func newPdftotextExtractor(exec executor) (*PdftotextExtractor, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not available: %w", binPdftotext, err)
	}
	return &PdftotextExtractor{exec: exec}, nil
}

// ExtractPages runs pdftotext over the document and splits its output into pages.
func (p *PdftotextExtractor) ExtractPages(r io.ReaderAt, size int64) ([]string, error) {
	var out bytes.Buffer
	args := []string{"-enc", "UTF-8", "-", "-"}
	if err := p.exec.RunPiped(binPdftotext, args, io.NewSectionReader(r, 0, size), &out); err != nil {
		return nil, unreadable("%s: %v", binPdftotext, err)
	}
	return splitPages(out.String()), nil
}

// splitPages splits pdftotext output on form feeds. pdftotext ends every
// page, including the last, with a form feed.
func splitPages(text string) []string {
	if text == "" {
		return nil
	}
	pages := strings.Split(text, "\f")
	if pages[len(pages)-1] == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}
