// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/refstrip/internal/pdftext"
	"github.com/pdiddy/refstrip/pkg/types"
)

// DirResult holds the outcome of converting the documents directly inside one
// input directory.
type DirResult struct {
	// Dir is the input directory.
	Dir string
	// Rel is Dir relative to the input root ("." for the root).
	Rel string
	// OutputDir is where Dir's text files are written.
	OutputDir string
	Converted int
	Failed    int
}

// Total returns the number of documents found in the directory.
func (r DirResult) Total() int {
	return r.Converted + r.Failed
}

// TreeResult holds one DirResult per visited directory, in visiting order.
type TreeResult struct {
	Dirs []DirResult
}

// Converted returns the number of documents written across the tree.
func (r TreeResult) Converted() int {
	n := 0
	for _, d := range r.Dirs {
		n += d.Converted
	}
	return n
}

// Failed returns the number of documents that could not be converted.
func (r TreeResult) Failed() int {
	n := 0
	for _, d := range r.Dirs {
		n += d.Failed
	}
	return n
}

// Total returns the number of documents found across the tree.
func (r TreeResult) Total() int {
	return r.Converted() + r.Failed()
}

// HasFailures reports whether any document failed conversion.
func (r TreeResult) HasFailures() bool {
	return r.Failed() > 0
}

// pendingDir is a directory waiting on the worklist.
type pendingDir struct {
	path string
	rel  string
}

// OutputDirFor returns the output directory mirroring the input directory at
// rel: the output root, then rel, then the marker.
func OutputDirFor(cfg types.ConversionConfig, rel string) string {
	cfg = cfg.Defaults()
	if rel == "." || rel == "" {
		return filepath.Join(cfg.OutputDir, cfg.Marker)
	}
	return filepath.Join(cfg.OutputDir, rel, cfg.Marker)
}

// EnsureRoots creates the input and output roots when they are missing.
// It fails without creating anything when the output root is the input root
// or lies inside it.
func EnsureRoots(cfg types.ConversionConfig, w io.Writer) error {
	if err := checkDisjoint(cfg.InputDir, cfg.OutputDir); err != nil {
		return err
	}
	roots := []struct{ label, dir string }{
		{"Input", cfg.InputDir},
		{"Output", cfg.OutputDir},
	}
	for _, r := range roots {
		if r.dir == "" {
			return fmt.Errorf("%s directory not set", r.label)
		}
		if _, err := os.Stat(r.dir); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s directory: %w", r.label, err)
		}
		fmt.Fprintf(w, "%s directory '%s' does not exist. Creating it...\n", r.label, r.dir)
		if err := os.MkdirAll(r.dir, 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", r.label, err)
		}
	}
	return nil
}

func checkDisjoint(inputDir, outputDir string) error {
	if inputDir == "" || outputDir == "" {
		return nil
	}
	in, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolving input directory: %w", err)
	}
	out, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("resolving output directory: %w", err)
	}
	rel, err := filepath.Rel(in, out)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("output directory %s must not be inside input directory %s", outputDir, inputDir)
	}
	return nil
}

// ConvertTree converts every document under cfg.InputDir, depth first, writing
// the text files into the mirrored directories under cfg.OutputDir. Documents
// of a directory are converted before its subdirectories are visited.
//
// Document failures are reported on w and counted; they do not stop the walk.
// Failing to create an output directory or to list an input directory is
// fatal. rec may be nil.
func ConvertTree(ext pdftext.Extractor, cfg types.ConversionConfig, rec Recorder, w io.Writer) (TreeResult, error) {
	cfg = cfg.Defaults()
	var result TreeResult

	if err := EnsureRoots(cfg, w); err != nil {
		return result, err
	}

	stack := []pendingDir{{path: cfg.InputDir, rel: "."}}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		res, subdirs, err := convertDir(ext, cfg, dir, rec, w)
		if err != nil {
			return result, err
		}
		result.Dirs = append(result.Dirs, res)

		// Push in reverse so subdirectories are visited in listing order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}
	return result, nil
}

// convertDir converts the documents directly inside dir and returns its
// subdirectories.
func convertDir(ext pdftext.Extractor, cfg types.ConversionConfig, dir pendingDir, rec Recorder, w io.Writer) (DirResult, []pendingDir, error) {
	res := DirResult{Dir: dir.path, Rel: dir.rel, OutputDir: OutputDirFor(cfg, dir.rel)}

	if err := ensureOutputDir(res.OutputDir, w); err != nil {
		return res, nil, err
	}

	entries, err := os.ReadDir(dir.path)
	if err != nil {
		return res, nil, fmt.Errorf("listing %s: %w", dir.path, err)
	}

	var docs []string
	var subdirs []pendingDir
	for _, e := range entries {
		path := filepath.Join(dir.path, e.Name())
		if isDir(e, path) {
			subdirs = append(subdirs, pendingDir{path: path, rel: filepath.Join(dir.rel, e.Name())})
			continue
		}
		if IsDocument(e.Name(), cfg.Extension) {
			docs = append(docs, e.Name())
		}
	}

	for _, name := range docs {
		txtPath := filepath.Join(res.OutputDir, TextName(name, cfg.Extension))
		doc := ConvertDocument(ext, filepath.Join(dir.path, name), txtPath, cfg.FilterReferences, w)
		if doc.Status == types.ConversionDone {
			res.Converted++
		} else {
			res.Failed++
		}
		if rec != nil {
			if err := rec.Record(doc); err != nil {
				fmt.Fprintf(w, "warning: could not record %s: %v\n", name, err)
			}
		}
	}

	if res.Total() > 0 {
		fmt.Fprintf(w, "\nDirectory %s: %d out of %d files converted successfully.\n",
			dir.path, res.Converted, res.Total())
	}
	return res, subdirs, nil
}

func ensureOutputDir(dir string, w io.Writer) error {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	fmt.Fprintf(w, "Created output directory: %s\n", dir)
	return nil
}

// isDir reports whether the entry is a directory, following symlinks.
func isDir(e fs.DirEntry, path string) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
