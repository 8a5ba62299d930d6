// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"path/filepath"
	"strings"
)

// DocumentState is the lifecycle position of a source document, derived
// entirely from where its artifacts sit in the output directory.
type DocumentState string

const (
	StateNew     DocumentState = "new"
	StateSkipped DocumentState = "skipped"
	StateParsed  DocumentState = "parsed"
	StateMatched DocumentState = "matched"
)

// Terminal reports whether the state short-circuits processing when
// reprocessing is not requested.
func (s DocumentState) Terminal() bool {
	return s == StateSkipped || s == StateParsed || s == StateMatched
}

// SourceDocument is a candidate PDF on disk. The pipeline never modifies it.
type SourceDocument struct {
	// Path is the filesystem path of the PDF.
	Path string `json:"path" yaml:"path"`

	// Name is the file name including extension (e.g. "a.pdf").
	Name string `json:"name" yaml:"name"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// NewSourceDocument builds a SourceDocument for path with the given size.
func NewSourceDocument(path string, size int64) SourceDocument {
	return SourceDocument{
		Path: path,
		Name: filepath.Base(path),
		Size: size,
	}
}

// Base returns the file name without its extension. Every artifact derived
// from the document is named after it.
func (d SourceDocument) Base() string {
	return strings.TrimSuffix(d.Name, filepath.Ext(d.Name))
}

// SizeKB returns the document size in kilobytes.
func (d SourceDocument) SizeKB() float64 {
	return BytesToKB(d.Size)
}

// BytesToKB converts a byte count to kilobytes (1 KB = 1024 bytes).
func BytesToKB(n int64) float64 {
	return float64(n) / 1024
}

// PageImage is a rendered page written to the transient converted area.
// It belongs to exactly one document and lives until cleanup.
type PageImage struct {
	// Document is the base name of the parent document.
	Document string `json:"document" yaml:"document"`

	// Index is the zero-based page index.
	Index int `json:"index" yaml:"index"`

	// Path is where the encoded bitmap was written.
	Path string `json:"path" yaml:"path"`
}
