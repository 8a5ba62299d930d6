// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout maps documents to their places in the output directory.
// The placement of a document's artifacts is its processing state: parsed
// text sits in the root, matched text in matches/, size rejections in
// skipped/, and page images transiently in converted/.
package layout

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdftotext/pkg/types"
)

const (
	convertedDir = "converted"
	matchesDir   = "matches"
	skippedDir   = "skipped"

	// TextExt is the extension of text artifacts and skip markers.
	TextExt = ".txt"

	// PartialExt marks a text artifact that is still being assembled.
	PartialExt = ".part"
)

// Layout resolves artifact paths under a single output root.
type Layout struct {
	Root string
}

// New returns a Layout rooted at root.
func New(root string) Layout {
	return Layout{Root: root}
}

// ConvertedDir is the transient page image area.
func (l Layout) ConvertedDir() string { return filepath.Join(l.Root, convertedDir) }

// MatchesDir is the area for artifacts that contained a keyword.
func (l Layout) MatchesDir() string { return filepath.Join(l.Root, matchesDir) }

// SkippedDir is the area for skip markers.
func (l Layout) SkippedDir() string { return filepath.Join(l.Root, skippedDir) }

// ParsedPath is the text artifact for base in the default output area.
func (l Layout) ParsedPath(base string) string {
	return filepath.Join(l.Root, base+TextExt)
}

// PartialPath is where the artifact for base is assembled before publishing.
func (l Layout) PartialPath(base string) string {
	return l.ParsedPath(base) + PartialExt
}

// MatchedPath is the text artifact for base after keyword relocation.
func (l Layout) MatchedPath(base string) string {
	return filepath.Join(l.MatchesDir(), base+TextExt)
}

// SkipMarkerPath is the marker recording that base was rejected for size.
func (l Layout) SkipMarkerPath(base string) string {
	return filepath.Join(l.SkippedDir(), base+TextExt)
}

// PageImagePath is the converted image for page index of base.
func (l Layout) PageImagePath(base string, index int, format types.ImageFormat) string {
	return filepath.Join(l.ConvertedDir(), fmt.Sprintf("%s_%d.%s", base, index, format.Ext()))
}

// State derives the state of base from the artifacts present on disk.
// The parsed location wins over matched, which wins over skipped, so a
// half-cleaned tree still reports the most advanced state.
func (l Layout) State(base string) (types.DocumentState, error) {
	checks := []struct {
		path  string
		state types.DocumentState
	}{
		{l.ParsedPath(base), types.StateParsed},
		{l.MatchedPath(base), types.StateMatched},
		{l.SkipMarkerPath(base), types.StateSkipped},
	}
	for _, c := range checks {
		ok, err := Exists(c.path)
		if err != nil {
			return "", err
		}
		if ok {
			return c.state, nil
		}
	}
	return types.StateNew, nil
}

// Clear removes every artifact of base except the one belonging to keep.
// It restores the one-state-per-document placement after a reprocess.
func (l Layout) Clear(base string, keep types.DocumentState) error {
	paths := map[types.DocumentState]string{
		types.StateParsed:  l.ParsedPath(base),
		types.StateMatched: l.MatchedPath(base),
		types.StateSkipped: l.SkipMarkerPath(base),
	}
	for state, p := range paths {
		if state == keep {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing stale %s artifact %s: %w", state, p, err)
		}
	}
	return nil
}

// Exists reports whether path exists. Errors other than not-exist are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
