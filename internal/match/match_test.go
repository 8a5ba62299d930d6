// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/internal/progress"
	"github.com/pdiddy/pdftotext/pkg/types"
)

func newMatcher(t *testing.T, s Strategy) (*Matcher, layout.Layout) {
	t.Helper()
	l := layout.New(t.TempDir())
	return New(l, s, progress.NewFactory(false, io.Discard), zerolog.Nop()), l
}

func writeArtifact(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRunMovesMatches(t *testing.T) {
	m, l := newMatcher(t, Exact{})
	writeArtifact(t, l.ParsedPath("c"), "nothing relevant")
	writeArtifact(t, l.ParsedPath("d"), "contains INVOICE")

	res, err := m.Run([]string{"INVOICE"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count())
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, []string{"d.txt"}, res.Matched)
	assert.True(t, fileExists(l.ParsedPath("c")), "non-matching artifact stays")
	assert.False(t, fileExists(l.ParsedPath("d")), "matching artifact leaves the output area")
	assert.True(t, fileExists(l.MatchedPath("d")), "matching artifact lands in matches")

	data, err := os.ReadFile(l.MatchedPath("d"))
	require.NoError(t, err)
	assert.Equal(t, "contains INVOICE", string(data), "artifact is moved unchanged")
}

func TestRunEmptyKeywordsIsNoop(t *testing.T) {
	m, l := newMatcher(t, Exact{})
	writeArtifact(t, l.ParsedPath("d"), "contains INVOICE")

	res, err := m.Run(nil)
	require.NoError(t, err)
	assert.Zero(t, res.Count())
	assert.Zero(t, res.Scanned)
	assert.True(t, fileExists(l.ParsedPath("d")))
	assert.False(t, fileExists(l.MatchesDir()), "matches dir is not created")
}

func TestRunIgnoresNonArtifacts(t *testing.T) {
	m, l := newMatcher(t, Exact{})
	writeArtifact(t, l.PartialPath("p"), "INVOICE in progress")
	writeArtifact(t, filepath.Join(l.Root, "notes.md"), "INVOICE")
	writeArtifact(t, l.SkipMarkerPath("s"), "INVOICE")
	writeArtifact(t, l.MatchedPath("old"), "INVOICE")

	res, err := m.Run([]string{"INVOICE"})
	require.NoError(t, err)
	assert.Zero(t, res.Scanned)
	assert.True(t, fileExists(l.PartialPath("p")))
	assert.True(t, fileExists(l.SkipMarkerPath("s")))
}

func TestRunMissingOutputDir(t *testing.T) {
	l := layout.New(filepath.Join(t.TempDir(), "absent"))
	m := New(l, Exact{}, progress.NewFactory(false, io.Discard), zerolog.Nop())

	res, err := m.Run([]string{"x"})
	require.NoError(t, err)
	assert.Zero(t, res.Count())
}

func TestRunIsIdempotent(t *testing.T) {
	m, l := newMatcher(t, Exact{})
	writeArtifact(t, l.ParsedPath("d"), "INVOICE")

	first, err := m.Run([]string{"INVOICE"})
	require.NoError(t, err)
	second, err := m.Run([]string{"INVOICE"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Count())
	assert.Zero(t, second.Count())
	assert.True(t, fileExists(l.MatchedPath("d")))
}

func TestExact(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		terms    []string
		wantTerm string
		wantOK   bool
	}{
		{name: "substring", text: "INVOICE #123", terms: []string{"INVOICE"}, wantTerm: "INVOICE", wantOK: true},
		{name: "case sensitive", text: "invoice #123", terms: []string{"INVOICE"}},
		{name: "first matching term wins", text: "receipt and invoice", terms: []string{"x", "invoice", "receipt"}, wantTerm: "invoice", wantOK: true},
		{name: "inside a word", text: "reinvoiced", terms: []string{"invoice"}, wantTerm: "invoice", wantOK: true},
		{name: "empty term ignored", text: "anything", terms: []string{""}},
		{name: "no terms", text: "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, ok := Exact{}.Match(tt.text, tt.terms)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTerm, term)
		})
	}
}

func TestSimilarity(t *testing.T) {
	s := Similarity{Threshold: 80}

	term, ok := s.Match("Please find the attached Invoice, number 123.", []string{"invoice number"})
	assert.True(t, ok, "all term tokens present in the text")
	assert.Equal(t, "invoice number", term)

	_, ok = s.Match("quarterly report", []string{"invoice"})
	assert.False(t, ok)

	_, ok = s.Match("anything", []string{""})
	assert.False(t, ok)
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"fuzzy was a bear", "fuzzy fuzzy was a bear", 100},
		{"the INVOICE total", "invoice", 100},
		{"", "invoice", 0},
		// A substitution costs a deletion plus an insertion.
		{"car", "cat", 200.0 / 3},
		{"abcde", "abcdf", 80},
		{"invoice", "invoices", 1400.0 / 15},
		{"apple", "zebra", 20},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetRatio(tt.a, tt.b), 0.01)
		})
	}
}

func TestSimilarityThresholdIsExclusive(t *testing.T) {
	s := Similarity{Threshold: 80}

	_, ok := s.Match("car", []string{"cat"})
	assert.False(t, ok, "66.7 is below the threshold")

	_, ok = s.Match("abcde", []string{"abcdf"})
	assert.False(t, ok, "a ratio equal to the threshold does not match")

	term, ok := s.Match("invoices", []string{"invoice"})
	assert.True(t, ok)
	assert.Equal(t, "invoice", term)
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy(types.MatchConfig{Strategy: types.StrategyExact})
	require.NoError(t, err)
	assert.IsType(t, Exact{}, s)

	s, err = NewStrategy(types.MatchConfig{Strategy: types.StrategySimilarity, Threshold: 90})
	require.NoError(t, err)
	assert.Equal(t, Similarity{Threshold: 90}, s)

	_, err = NewStrategy(types.MatchConfig{Strategy: "regex"})
	assert.Error(t, err)
}
