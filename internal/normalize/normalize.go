// Package normalize rewrites pricing JSON files so each ends with exactly
// one trailing newline. File content is otherwise untouched; nothing here
// parses JSON.
package normalize

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Pattern matches the files the normalizer operates on, directly inside the
// target directory (non-recursive).
const Pattern = "*.json"

// File records the outcome for a single matched file.
type File struct {
	Path        string
	BytesBefore int64
	BytesAfter  int64
	Changed     bool
}

// Result summarizes a normalization pass over a directory.
type Result struct {
	Dir   string
	Files []File
}

// Count returns the number of regular files processed.
func (r *Result) Count() int {
	return len(r.Files)
}

// ChangedCount returns how many files had their content rewritten to
// different bytes.
func (r *Result) ChangedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed {
			n++
		}
	}
	return n
}

// Totals returns the summed byte sizes before and after normalization.
func (r *Result) Totals() (before, after int64) {
	for _, f := range r.Files {
		before += f.BytesBefore
		after += f.BytesAfter
	}
	return before, after
}

// Dir normalizes every *.json file directly inside dir.
//
// Each matched regular file is read whole, stripped of all trailing newline
// characters, given back exactly one, and written in place. Matches that are
// not regular files are skipped. A missing directory matches nothing and is
// not an error. The first I/O failure aborts the pass.
func Dir(dir string) (*Result, error) {
	matches, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern: %w", err)
	}

	res := &Result{Dir: dir}
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		normalized := Content(data)
		if err := os.WriteFile(path, normalized, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}

		res.Files = append(res.Files, File{
			Path:        path,
			BytesBefore: int64(len(data)),
			BytesAfter:  int64(len(normalized)),
			Changed:     !bytes.Equal(data, normalized),
		})
	}

	return res, nil
}

// Content strips every trailing newline from data and appends exactly one.
// Empty input becomes a single newline.
func Content(data []byte) []byte {
	trimmed := data
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '\n' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	out := make([]byte, 0, len(trimmed)+1)
	out = append(out, trimmed...)
	return append(out, '\n')
}
