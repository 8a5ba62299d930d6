// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match triages text artifacts by keyword. Artifacts in the output
// area that contain any configured term are moved into the matches area;
// the move itself is the record of the match.
package match

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/internal/progress"
)

// Result summarizes one matching pass.
type Result struct {
	// Scanned is the number of artifacts read.
	Scanned int

	// Matched lists the file names moved to the matches area, in scan order.
	Matched []string
}

// Count returns the number of matched artifacts.
func (r Result) Count() int {
	return len(r.Matched)
}

// Matcher scans the output area of a layout with a Strategy.
type Matcher struct {
	layout   layout.Layout
	strategy Strategy
	progress progress.Factory
	log      zerolog.Logger
}

// New creates a Matcher.
func New(l layout.Layout, s Strategy, pf progress.Factory, log zerolog.Logger) *Matcher {
	return &Matcher{layout: l, strategy: s, progress: pf, log: log}
}

// Run tests every text artifact in the output area against terms and moves
// each matching artifact into the matches area. With no terms it does
// nothing. Artifacts already in the matches area are not rescanned.
func (m *Matcher) Run(terms []string) (Result, error) {
	var res Result
	if len(terms) == 0 {
		return res, nil
	}

	names, err := m.artifacts()
	if err != nil {
		return res, err
	}
	m.log.Info().Int("files", len(names)).Msg("checking for keyword matches")

	bar := m.progress.New(len(names), "matching")
	defer bar.Finish()

	for _, name := range names {
		path := filepath.Join(m.layout.Root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", path, err)
		}
		res.Scanned++

		term, ok := m.strategy.Match(string(data), terms)
		if ok {
			dest := filepath.Join(m.layout.MatchesDir(), name)
			m.log.Debug().Str("file", name).Str("term", term).Str("dest", dest).Msg("keyword found, moving")
			if err := m.move(path, dest); err != nil {
				return res, err
			}
			res.Matched = append(res.Matched, name)
		}
		bar.Add(1)
	}

	m.log.Info().Int("matches", res.Count()).Msg("finished keyword matching")
	return res, nil
}

// artifacts lists the .txt files directly in the output root, sorted.
func (m *Matcher) artifacts() ([]string, error) {
	entries, err := os.ReadDir(m.layout.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", m.layout.Root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), layout.TextExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (m *Matcher) move(src, dest string) error {
	if err := os.MkdirAll(m.layout.MatchesDir(), 0o755); err != nil {
		return fmt.Errorf("creating matches directory: %w", err)
	}
	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("moving %s to %s: %w", src, dest, err)
	}
	return nil
}
