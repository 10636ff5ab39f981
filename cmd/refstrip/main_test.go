// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/refstrip/internal/ledger"
	"github.com/pdiddy/refstrip/pkg/types"
)

func TestRootCommand_ConvertsTree(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "out")
	require.NoError(t, os.MkdirAll(filepath.Join(in, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(in, "sub", "broken.pdf"), []byte("not a pdf"), 0o644))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{
		"--input-dir", in,
		"--output-dir", out,
		"--ledger", filepath.Join(root, "ledger.db"),
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// A broken document is reported but does not fail the run.
	require.NoError(t, rootCmd.Execute())

	got := buf.String()
	assert.Contains(t, got, "failed:  broken.pdf (unreadable document")
	assert.Contains(t, got, "0 out of 1 files converted successfully.")
	assert.Contains(t, got, "Conversion process completed.")
	assert.DirExists(t, filepath.Join(out, "sub", types.DefaultMarker))
	assert.NoFileExists(t, filepath.Join(out, "sub", types.DefaultMarker, "broken.txt"))
	assert.FileExists(t, filepath.Join(root, "ledger.db"))
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	withRefs := filepath.Join(dir, "paper.txt")
	plain := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(withRefs, []byte("Intro text\nREFERENCES\n[1] foo\n"), 0o644))
	require.NoError(t, os.WriteFile(plain, []byte("nothing here"), 0o644))

	var buf bytes.Buffer
	require.NoError(t, detectFile(withRefs, true, &buf))
	require.NoError(t, detectFile(plain, false, &buf))

	assert.Equal(t,
		withRefs+": 11 (11 of 30 bytes kept)\n"+
			"  > REFERENCES\n"+
			plain+": none (12 bytes kept)\n",
		buf.String())

	assert.Error(t, detectFile(filepath.Join(dir, "missing.txt"), false, &buf))
}

func TestFormatLedgerTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatLedgerTable(nil, ledger.Summary{}, &buf))
	assert.Equal(t, "No documents recorded.\n", buf.String())

	buf.Reset()
	docs := []types.Document{
		{SourcePath: "in/a.pdf", Status: types.ConversionDone, TextLength: 900, Cutoff: 700},
		{SourcePath: "in/b.pdf", Status: types.ConversionDone, TextLength: 50, Cutoff: types.NoCutoff},
		{SourcePath: "in/c.pdf", Status: types.ConversionFailed, Cutoff: types.NoCutoff, Error: "unreadable document"},
	}
	require.NoError(t, formatLedgerTable(docs, ledger.Summary{Converted: 4, Failed: 1, Truncated: 2}, &buf))

	got := buf.String()
	assert.Contains(t, got, "700")
	assert.Contains(t, got, "all")
	assert.Contains(t, got, "unreadable document")
	assert.Contains(t, got, "3 of 5 documents (4 converted, 1 failed, 2 truncated)")
}
