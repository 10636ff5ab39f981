// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	// BackendNative extracts text in-process with github.com/ledongthuc/pdf.
	BackendNative ExtractionBackend = "native"
	// BackendPdftotext shells out to poppler's pdftotext.
	BackendPdftotext ExtractionBackend = "pdftotext"
)

const (
	// DefaultMarker is the subdirectory inserted at every level of the output tree.
	DefaultMarker = "converted_txt"
	// DefaultExtension selects the documents to convert.
	DefaultExtension = ".pdf"
	// TextExtension replaces the document extension in output file names.
	TextExtension = ".txt"
)

// ConversionConfig holds the settings for one conversion run.
type ConversionConfig struct {
	// InputDir is the root of the tree of documents to convert.
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// OutputDir is the root under which the input tree is mirrored.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Marker is the subdirectory appended to every mirrored directory (default "converted_txt").
	Marker string `json:"marker" yaml:"marker" mapstructure:"marker"`

	// Extension is the document file extension, matched case-insensitively (default ".pdf").
	Extension string `json:"extension" yaml:"extension" mapstructure:"extension"`

	// Backend selects the extraction tool: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// FilterReferences truncates each text at its references or
	// acknowledgments heading. When false the full text is written.
	FilterReferences bool `json:"filter_references" yaml:"filter_references" mapstructure:"filter_references"`

	// Ledger is the path of the SQLite outcome ledger. Empty disables it.
	Ledger string `json:"ledger,omitempty" yaml:"ledger,omitempty" mapstructure:"ledger"`
}

// Defaults returns a copy of c with empty fields set to their defaults and
// a leading dot added to Extension. FilterReferences is left as is.
func (c ConversionConfig) Defaults() ConversionConfig {
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Backend == "" {
		c.Backend = BackendNative
	}
	return c
}
