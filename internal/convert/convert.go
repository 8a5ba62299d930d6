// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives documents through the processing state machine:
// gate, rasterize, recognize and assemble, clean up. Each document is
// processed to completion before the next begins. A rasterizer or OCR
// failure is contained to its document; a filesystem failure stops the
// batch, because it leaves the on-disk state in doubt.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdftotext/internal/assemble"
	"github.com/pdiddy/pdftotext/internal/cleanup"
	"github.com/pdiddy/pdftotext/internal/gate"
	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/internal/ocr"
	"github.com/pdiddy/pdftotext/internal/progress"
	"github.com/pdiddy/pdftotext/internal/raster"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// Outcome is what happened to one document.
type Outcome string

const (
	OutcomeParsed           Outcome = "parsed"
	OutcomeAlreadyProcessed Outcome = "already processed"
	OutcomeTooLarge         Outcome = "too large"
	OutcomeFailed           Outcome = "failed"
)

// DocumentResult is the isolated outcome of processing one document.
type DocumentResult struct {
	Document types.SourceDocument
	Outcome  Outcome

	// Artifact is the published text path when Outcome is OutcomeParsed.
	Artifact string

	// Pages is the number of pages rasterized.
	Pages int

	// Err is the rasterizer or OCR failure when Outcome is OutcomeFailed.
	Err error
}

// Failure records a document that could not be processed.
type Failure struct {
	Document string `json:"document" yaml:"document"`
	Error    string `json:"error" yaml:"error"`
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Parsed           int       `json:"parsed" yaml:"parsed"`
	AlreadyProcessed int       `json:"already_processed" yaml:"already_processed"`
	TooLarge         int       `json:"too_large" yaml:"too_large"`
	Failed           int       `json:"failed" yaml:"failed"`
	Failures         []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Skipped returns the number of documents not rasterized for any reason.
func (r BatchResult) Skipped() int {
	return r.AlreadyProcessed + r.TooLarge
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Parsed + r.Skipped() + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(dr DocumentResult) {
	switch dr.Outcome {
	case OutcomeParsed:
		r.Parsed++
	case OutcomeAlreadyProcessed:
		r.AlreadyProcessed++
	case OutcomeTooLarge:
		r.TooLarge++
	case OutcomeFailed:
		r.Failed++
		r.Failures = append(r.Failures, Failure{Document: dr.Document.Name, Error: dr.Err.Error()})
	}
}

// Pipeline processes documents into text artifacts.
type Pipeline struct {
	layout        layout.Layout
	gate          *gate.Gate
	pages         *raster.PageWriter
	assembler     *assemble.Assembler
	reprocess     bool
	keepConverted bool
	progress      progress.Factory
	log           zerolog.Logger
}

// NewPipeline wires the stages for cfg around the given rasterizer and OCR
// engine.
func NewPipeline(cfg types.ParseConfig, l layout.Layout, r raster.Rasterizer, e ocr.Engine, pf progress.Factory, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		layout:        l,
		gate:          gate.New(l, cfg.MaxSizeKB, log),
		pages:         raster.NewPageWriter(r, l, cfg.DPI, cfg.ImageFormat, log),
		assembler:     assemble.New(e, l, log),
		reprocess:     cfg.Reprocess,
		keepConverted: cfg.KeepConverted,
		progress:      pf,
		log:           log,
	}
}

// ConvertDocument takes doc through the state machine. The returned error is
// non-nil only for failures that must stop the batch; a rasterizer or OCR
// failure is reported in the result with OutcomeFailed.
func (p *Pipeline) ConvertDocument(ctx context.Context, doc types.SourceDocument) (DocumentResult, error) {
	res := DocumentResult{Document: doc}
	p.log.Debug().Str("document", doc.Name).Float64("size_kb", doc.SizeKB()).Msg("evaluating")

	decision, err := p.gate.Evaluate(doc, p.reprocess)
	if err != nil {
		return res, fmt.Errorf("evaluating %s: %w", doc.Name, err)
	}
	switch decision.Reason {
	case gate.ReasonAlreadyProcessed:
		res.Outcome = OutcomeAlreadyProcessed
		return res, nil
	case gate.ReasonTooLarge:
		res.Outcome = OutcomeTooLarge
		return res, nil
	}

	pages, err := p.pages.WritePages(ctx, doc)
	res.Pages = len(pages)

	var artifact string
	if err == nil {
		bar := p.progress.New(len(pages), doc.Name)
		artifact, err = p.assembler.Assemble(ctx, doc, pages, bar)
		bar.Finish()
	}

	if !p.keepConverted {
		if cerr := cleanup.RemovePages(pages, p.layout.ConvertedDir(), p.log); cerr != nil {
			return res, cerr
		}
	}

	if err != nil {
		if types.IsStageError(err) {
			res.Outcome = OutcomeFailed
			res.Err = err
			return res, nil
		}
		return res, err
	}

	// A reprocessed document may still have a matched copy or a skip marker
	// from an earlier run.
	if err := p.layout.Clear(doc.Base(), types.StateParsed); err != nil {
		return res, err
	}

	res.Outcome = OutcomeParsed
	res.Artifact = artifact
	return res, nil
}

// ConvertBatch processes docs in order, printing per-document status to w
// and returning a summary. It stops early on a fatal error or when ctx is
// cancelled, returning the counts so far alongside the error.
func (p *Pipeline) ConvertBatch(ctx context.Context, docs []types.SourceDocument, w io.Writer) (BatchResult, error) {
	var result BatchResult
	p.log.Info().Int("files", len(docs)).Msg("parsing PDF file(s)")

	bar := p.progress.New(len(docs), "documents")
	defer bar.Finish()

	// Artifacts are named by base, so "a.pdf" and "a.PDF" would share one.
	// Only the first document with a given base is processed.
	bases := make(map[string]string, len(docs))

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if prev, dup := bases[doc.Base()]; dup {
			dr := DocumentResult{
				Document: doc,
				Outcome:  OutcomeFailed,
				Err:      fmt.Errorf("output name %q is already used by %s", doc.Base(), prev),
			}
			result.add(dr)
			bar.Add(1)
			fmt.Fprintf(w, "failed:  %s (%v)\n", doc.Name, dr.Err)
			p.log.Warn().Str("document", doc.Name).Str("conflicts_with", prev).Msg("duplicate output name, not processed")
			continue
		}
		bases[doc.Base()] = doc.Name

		dr, err := p.ConvertDocument(ctx, doc)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", doc.Name, err)
			return result, err
		}
		result.add(dr)
		bar.Add(1)

		switch dr.Outcome {
		case OutcomeParsed:
			fmt.Fprintf(w, "parsed:  %s (%d page(s))\n", doc.Name, dr.Pages)
		case OutcomeAlreadyProcessed:
			fmt.Fprintf(w, "skipped: %s (already processed)\n", doc.Name)
		case OutcomeTooLarge:
			fmt.Fprintf(w, "skipped: %s (%.0f KB exceeds limit)\n", doc.Name, doc.SizeKB())
		case OutcomeFailed:
			fmt.Fprintf(w, "failed:  %s (%v)\n", doc.Name, dr.Err)
			p.log.Error().Err(dr.Err).Str("document", doc.Name).Msg("document failed")
			if errors.Is(dr.Err, context.Canceled) || errors.Is(dr.Err, context.DeadlineExceeded) {
				return result, dr.Err
			}
		}
	}

	p.log.Info().Int("parsed", result.Parsed).Int("skipped", result.Skipped()).Int("failed", result.Failed).
		Msg("finished parsing")
	return result, nil
}
