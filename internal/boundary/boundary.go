// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package boundary locates the start of the references or acknowledgments
// section in text extracted from a PDF, so that everything from that point on
// can be dropped.
//
// Detection is pure pattern matching over the raw text. Headings are
// described by a data table of (label, surface form) pairs that is compiled
// once into a Detector.
package boundary

import (
	"fmt"
	"regexp"
	"strings"
)

// Form is a surface form in which a heading label may appear.
type Form int

const (
	// FormLine is the heading alone on a line: preceded by a line break and
	// followed by a line break or the end of the text.
	FormLine Form = iota
	// FormLeading is the heading at the very start of the text, followed by
	// a line break.
	FormLeading
	// FormSpaced is the heading alone on a line with its letters separated
	// by whitespace ("R E F E R E N C E S").
	FormSpaced
	// FormBracketed is the heading in square brackets, anywhere in the text.
	FormBracketed
	// FormNumbered is the heading after a section number ("3. REFERENCES"),
	// anywhere in the text.
	FormNumbered
)

func (f Form) String() string {
	switch f {
	case FormLine:
		return "line"
	case FormLeading:
		return "leading"
	case FormSpaced:
		return "spaced"
	case FormBracketed:
		return "bracketed"
	case FormNumbered:
		return "numbered"
	default:
		return fmt.Sprintf("Form(%d)", int(f))
	}
}

// Heading is one row of the heading table.
type Heading struct {
	Label string
	Forms []Form
}

var standardForms = []Form{FormLine, FormLeading, FormSpaced}

// DefaultHeadings lists the section headings that mark the end of a paper's body.
var DefaultHeadings = []Heading{
	{Label: "REFERENCES", Forms: []Form{FormLine, FormLeading, FormSpaced, FormBracketed, FormNumbered}},
	{Label: "REFERENCE", Forms: standardForms},
	{Label: "BIBLIOGRAPHY", Forms: standardForms},
	{Label: "WORKS CITED", Forms: standardForms},
	{Label: "CITED WORKS", Forms: standardForms},
	{Label: "LITERATURE CITED", Forms: standardForms},
	{Label: "ACKNOWLEDGMENTS", Forms: standardForms},
	{Label: "ACKNOWLEDGMENT", Forms: standardForms},
	{Label: "ACKNOWLEDGEMENT", Forms: standardForms},
	{Label: "ACKNOWLEDGEMENTS", Forms: standardForms},
}

// Every pattern captures the heading itself in the group named "h"; its start
// is the cut point. The line break before a standalone heading stays with the
// kept text.
const (
	lineStart = `\n[ \t]*`
	lineEnd   = `[ \t\r]*(?:\n|$)`
)

// Detector finds the earliest heading match in a text.
type Detector struct {
	patterns []*regexp.Regexp
}

// New compiles a heading table into a Detector.
func New(headings []Heading) (*Detector, error) {
	d := &Detector{}
	for _, h := range headings {
		if strings.TrimSpace(h.Label) == "" {
			return nil, fmt.Errorf("heading with empty label")
		}
		for _, f := range h.Forms {
			expr, err := pattern(h.Label, f)
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("compiling %s form of %q: %w", f, h.Label, err)
			}
			d.patterns = append(d.patterns, re)
		}
	}
	return d, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(headings []Heading) *Detector {
	d, err := New(headings)
	if err != nil {
		panic(err)
	}
	return d
}

func pattern(label string, f Form) (string, error) {
	compact := compactExpr(label)
	switch f {
	case FormLine:
		return `(?i)` + lineStart + `(?P<h>` + compact + `)` + lineEnd, nil
	case FormLeading:
		return `(?i)^[ \t]*(?P<h>` + compact + `)[ \t\r]*\n`, nil
	case FormSpaced:
		return `(?i)(?:^|\n)[ \t]*(?P<h>` + spacedExpr(label) + `)` + lineEnd, nil
	case FormBracketed:
		return `(?i)(?P<h>\[\s*` + compact + `\s*\])`, nil
	case FormNumbered:
		return `(?i)(?P<h>\d+\.\s*` + compact + `)`, nil
	default:
		return "", fmt.Errorf("unknown form %s for %q", f, label)
	}
}

// compactExpr matches the label's words separated by whitespace.
func compactExpr(label string) string {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}

// spacedExpr matches the label's letters separated by any amount of whitespace.
func spacedExpr(label string) string {
	var letters []string
	for _, r := range label {
		if r == ' ' || r == '\t' {
			continue
		}
		letters = append(letters, regexp.QuoteMeta(string(r)))
	}
	return strings.Join(letters, `\s*`)
}

// Detect returns the byte offset of the earliest heading in text. ok is false
// when no heading is found.
func (d *Detector) Detect(text string) (offset int, ok bool) {
	offset = -1
	for _, re := range d.patterns {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		start := m[2*re.SubexpIndex("h")]
		if offset < 0 || start < offset {
			offset = start
		}
	}
	return offset, offset >= 0
}

// Truncate returns text up to, not including, the earliest heading, or text
// unchanged when there is none.
func (d *Detector) Truncate(text string) string {
	if offset, ok := d.Detect(text); ok {
		return text[:offset]
	}
	return text
}

var defaultDetector = MustNew(DefaultHeadings)

// Detect runs the default heading table over text.
func Detect(text string) (int, bool) {
	return defaultDetector.Detect(text)
}

// Truncate cuts text at the earliest heading of the default table.
func Truncate(text string) string {
	return defaultDetector.Truncate(text)
}
