// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates candidate PDF files from a file or directory
// path.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/pdftotext/pkg/types"
)

const pdfExt = ".pdf"

// IsPDF reports whether name has a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), pdfExt)
}

// Discover returns the PDF documents named by path. A file path must itself
// be a PDF. A directory path yields its immediate regular .pdf entries,
// sorted by name so that batch runs are reproducible. Subdirectories are not
// descended into.
func Discover(path string) ([]types.SourceDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if !info.IsDir() {
		if !IsPDF(path) {
			return nil, fmt.Errorf("%w: %s has extension %q", types.ErrInvalidInputType, path, filepath.Ext(path))
		}
		return []types.SourceDocument{types.NewSourceDocument(path, info.Size())}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", path, err)
	}

	var docs []types.SourceDocument
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !IsPDF(entry.Name()) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		docs = append(docs, types.NewSourceDocument(filepath.Join(path, entry.Name()), fi.Size()))
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
