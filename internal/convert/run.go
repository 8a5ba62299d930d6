// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdftotext/internal/discover"
	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/internal/match"
	"github.com/pdiddy/pdftotext/internal/ocr"
	"github.com/pdiddy/pdftotext/internal/progress"
	"github.com/pdiddy/pdftotext/internal/raster"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// Report is the outcome of one invocation: parsing (unless match-only)
// followed by keyword triage.
type Report struct {
	BatchResult `yaml:",inline"`

	MatchOnly    bool      `json:"match_only" yaml:"match_only"`
	Discovered   int       `json:"discovered" yaml:"discovered"`
	Matched      int       `json:"matched" yaml:"matched"`
	MatchedFiles []string  `json:"matched_files,omitempty" yaml:"matched_files,omitempty"`
	Timestamp    time.Time `json:"timestamp" yaml:"timestamp"`
}

// Runner executes a full invocation for a resolved Config.
type Runner struct {
	Config types.Config

	// Rasterizer and Engine are only used when Config.MatchOnly is false.
	Rasterizer raster.Rasterizer
	Engine     ocr.Engine

	// Out receives per-document status lines and the summary.
	Out      io.Writer
	Progress progress.Factory
	Log      zerolog.Logger
}

// Run discovers and parses the input documents, then moves artifacts that
// contain a keyword into the matches area. Discovery errors (ErrNotFound,
// ErrInvalidInputType) and filesystem errors are returned; per-document
// failures are counted in the report.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	cfg := r.Config
	l := layout.New(cfg.OutputDir)
	rep := Report{MatchOnly: cfg.MatchOnly}

	if !cfg.MatchOnly {
		docs, err := discover.Discover(cfg.InputPath)
		if err != nil {
			return rep, err
		}
		rep.Discovered = len(docs)

		p := NewPipeline(cfg.Parse, l, r.Rasterizer, r.Engine, r.Progress, r.Log)
		batch, err := p.ConvertBatch(ctx, docs, r.Out)
		rep.BatchResult = batch
		if err != nil {
			return rep, err
		}
	}

	if len(cfg.Match.Keywords) > 0 {
		strategy, err := match.NewStrategy(cfg.Match)
		if err != nil {
			return rep, err
		}
		res, err := match.New(l, strategy, r.Progress, r.Log).Run(cfg.Match.Keywords)
		rep.Matched = res.Count()
		rep.MatchedFiles = res.Matched
		for _, name := range res.Matched {
			fmt.Fprintf(r.Out, "matched: %s\n", name)
		}
		if err != nil {
			return rep, err
		}
	}

	rep.Timestamp = time.Now().UTC()
	r.printSummary(rep)
	return rep, nil
}

func (r *Runner) printSummary(rep Report) {
	if !rep.MatchOnly {
		fmt.Fprintf(r.Out, "\nBatch summary: %d parsed, %d skipped, %d failed (total: %d)\n",
			rep.Parsed, rep.Skipped(), rep.Failed, rep.Total())
	}
	if len(r.Config.Match.Keywords) > 0 {
		fmt.Fprintf(r.Out, "Found %d keyword match(es).\n", rep.Matched)
	}
}

// WriteReport saves rep to path as YAML, creating parent directories.
func WriteReport(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	data, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
