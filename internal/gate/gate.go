// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gate decides whether a document goes on to rasterization. It
// combines the state tracker (skip documents that already reached a
// terminal state) with the size gate (skip documents above the ceiling and
// leave a skip marker behind). Neither check touches the PDF contents.
package gate

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// Reason explains a gate decision.
type Reason string

const (
	ReasonAdmitted         Reason = "admitted"
	ReasonAlreadyProcessed Reason = "already processed"
	ReasonTooLarge         Reason = "too large"
)

// Decision is the outcome of evaluating one document.
type Decision struct {
	Reason Reason

	// Prior is the state found on disk. It is StateNew when reprocessing,
	// since existing markers are not consulted then.
	Prior types.DocumentState
}

// Admitted reports whether the document should be rasterized.
func (d Decision) Admitted() bool {
	return d.Reason == ReasonAdmitted
}

// Gate evaluates documents against the output layout and a size ceiling.
type Gate struct {
	layout    layout.Layout
	maxSizeKB float64
	log       zerolog.Logger
}

// New creates a Gate. maxSizeKB is the inclusive upper bound on document
// size; anything strictly larger is rejected.
func New(l layout.Layout, maxSizeKB float64, log zerolog.Logger) *Gate {
	return &Gate{layout: l, maxSizeKB: maxSizeKB, log: log}
}

// Evaluate decides whether doc is admitted. When reprocess is false a
// document with a parsed, matched, or skip-marker artifact is skipped
// without further I/O. Otherwise a document over the ceiling gets a skip
// marker and is skipped. Errors are filesystem failures and are fatal to
// the batch.
func (g *Gate) Evaluate(doc types.SourceDocument, reprocess bool) (Decision, error) {
	base := doc.Base()

	if !reprocess {
		state, err := g.layout.State(base)
		if err != nil {
			return Decision{}, err
		}
		if state.Terminal() {
			g.log.Debug().Str("document", doc.Name).Str("state", string(state)).
				Msg("already processed, skipping")
			return Decision{Reason: ReasonAlreadyProcessed, Prior: state}, nil
		}
	}

	if sizeKB := doc.SizeKB(); sizeKB > g.maxSizeKB {
		g.log.Debug().Str("document", doc.Name).Float64("size_kb", sizeKB).
			Float64("max_size_kb", g.maxSizeKB).Msg("exceeds size limit, skipping")
		if err := g.writeSkipMarker(doc); err != nil {
			return Decision{}, err
		}
		if reprocess {
			if err := g.layout.Clear(base, types.StateSkipped); err != nil {
				return Decision{}, err
			}
		}
		return Decision{Reason: ReasonTooLarge, Prior: types.StateNew}, nil
	}

	return Decision{Reason: ReasonAdmitted, Prior: types.StateNew}, nil
}

// writeSkipMarker records doc in the skipped area. Only the file's
// existence carries meaning; the content is for humans.
func (g *Gate) writeSkipMarker(doc types.SourceDocument) error {
	if err := os.MkdirAll(g.layout.SkippedDir(), 0o755); err != nil {
		return fmt.Errorf("creating skipped directory: %w", err)
	}
	path := g.layout.SkipMarkerPath(doc.Base())
	content := fmt.Sprintf("filename=%q:filesize=%d\n", doc.Name, doc.Size)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing skip marker %s: %w", path, err)
	}
	return nil
}
