// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refstrip/pkg/types"
)

func testLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "state", "refstrip.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

var convertedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleDocs() []types.Document {
	return []types.Document{
		{
			SourcePath:  "input/b.pdf",
			OutputPath:  "output/converted_txt/b.txt",
			Status:      types.ConversionDone,
			TextLength:  5120,
			Cutoff:      4096,
			ConvertedAt: convertedAt,
		},
		{
			SourcePath:  "input/a.pdf",
			OutputPath:  "output/converted_txt/a.txt",
			Status:      types.ConversionDone,
			TextLength:  800,
			Cutoff:      types.NoCutoff,
			ConvertedAt: convertedAt,
		},
		{
			SourcePath:  "input/sub/c.pdf",
			OutputPath:  "output/sub/converted_txt/c.txt",
			Status:      types.ConversionFailed,
			Cutoff:      types.NoCutoff,
			Error:       "unreadable document: open PDF: not a PDF file",
			ConvertedAt: convertedAt,
		},
	}
}

func TestRecordAndList(t *testing.T) {
	l := testLedger(t)
	for _, d := range sampleDocs() {
		require.NoError(t, l.Record(d))
	}

	docs, err := l.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "input/a.pdf", docs[0].SourcePath)
	assert.Equal(t, "input/b.pdf", docs[1].SourcePath)
	assert.Equal(t, "input/sub/c.pdf", docs[2].SourcePath)

	assert.Equal(t, 4096, docs[1].Cutoff)
	assert.True(t, docs[1].Truncated())
	assert.Equal(t, convertedAt, docs[1].ConvertedAt)
	assert.Equal(t, types.ConversionFailed, docs[2].Status)
	assert.Contains(t, docs[2].Error, "not a PDF file")
}

func TestList_Filters(t *testing.T) {
	l := testLedger(t)
	for _, d := range sampleDocs() {
		require.NoError(t, l.Record(d))
	}
	ctx := context.Background()

	failed, err := l.List(ctx, ListOptions{Status: types.ConversionFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "input/sub/c.pdf", failed[0].SourcePath)

	truncated, err := l.List(ctx, ListOptions{Truncated: true})
	require.NoError(t, err)
	require.Len(t, truncated, 1)
	assert.Equal(t, "input/b.pdf", truncated[0].SourcePath)
}

func TestRecord_ReplacesEarlierRun(t *testing.T) {
	l := testLedger(t)
	doc := sampleDocs()[2]
	require.NoError(t, l.Record(doc))

	doc.Status = types.ConversionDone
	doc.Error = ""
	doc.TextLength = 300
	doc.Cutoff = 120
	require.NoError(t, l.Record(doc))

	docs, err := l.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, types.ConversionDone, docs[0].Status)
	assert.Equal(t, 120, docs[0].Cutoff)
	assert.Empty(t, docs[0].Error)
}

func TestSummarize(t *testing.T) {
	l := testLedger(t)
	ctx := context.Background()

	s, err := l.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, s)

	for _, d := range sampleDocs() {
		require.NoError(t, l.Record(d))
	}
	s, err = l.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Converted: 2, Failed: 1, Truncated: 1}, s)
	assert.Equal(t, 3, s.Total())
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refstrip.db")
	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(sampleDocs()[0]))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()
	docs, err := l.List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestExportYAML(t *testing.T) {
	l := testLedger(t)
	for _, d := range sampleDocs() {
		require.NoError(t, l.Record(d))
	}

	var buf bytes.Buffer
	require.NoError(t, l.ExportYAML(context.Background(), ListOptions{}, &buf))

	var got Export
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Summary{Converted: 2, Failed: 1, Truncated: 1}, got.Summary)
	require.Len(t, got.Documents, 3)
	assert.Equal(t, "output/converted_txt/a.txt", got.Documents[0].OutputPath)
	assert.Contains(t, buf.String(), "source_path: input/sub/c.pdf")
}

func TestExportJSON(t *testing.T) {
	l := testLedger(t)
	for _, d := range sampleDocs() {
		require.NoError(t, l.Record(d))
	}

	var buf bytes.Buffer
	require.NoError(t, l.ExportJSON(context.Background(), ListOptions{Status: types.ConversionFailed}, &buf))

	var got Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Summary{Failed: 1}, got.Summary)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, types.ConversionFailed, got.Documents[0].Status)
}

func TestExportYAML_SummaryFollowsFilter(t *testing.T) {
	l := testLedger(t)
	for _, d := range sampleDocs() {
		require.NoError(t, l.Record(d))
	}

	var buf bytes.Buffer
	require.NoError(t, l.ExportYAML(context.Background(), ListOptions{Truncated: true}, &buf))

	var got Export
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Summary{Converted: 1, Truncated: 1}, got.Summary)
	assert.Equal(t, got.Summary.Total(), len(got.Documents))
}
