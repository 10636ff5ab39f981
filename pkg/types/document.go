// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one document to text.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// NoCutoff is the Cutoff value of a document whose text was kept whole.
const NoCutoff = -1

// Document holds the outcome of converting a single source file.
type Document struct {
	// SourcePath is the path of the PDF under the input root.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the path of the text file under the output root.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Status is converted or failed.
	Status ConversionStatus `json:"status" yaml:"status"`

	// TextLength is the length in bytes of the extracted text before truncation.
	TextLength int `json:"text_length" yaml:"text_length"`

	// Cutoff is the byte offset at which the text was truncated, or NoCutoff.
	Cutoff int `json:"cutoff" yaml:"cutoff"`

	// Error describes why conversion failed. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ConvertedAt is when the document was processed.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}

// Truncated reports whether a heading was found and the text was cut.
func (d Document) Truncated() bool {
	return d.Cutoff != NoCutoff
}
