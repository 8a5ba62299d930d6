// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble builds a document's text artifact from its page images.
// Pages are recognized in index order and appended one at a time to a
// partial file, which is renamed into place only after the last page
// succeeds. A failed document therefore never leaves an artifact that a
// later run would mistake for a finished one.
package assemble

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/internal/ocr"
	"github.com/pdiddy/pdftotext/internal/progress"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// Assembler turns page images into published text artifacts.
type Assembler struct {
	engine ocr.Engine
	layout layout.Layout
	log    zerolog.Logger
}

// New creates an Assembler that recognizes pages with engine.
func New(engine ocr.Engine, l layout.Layout, log zerolog.Logger) *Assembler {
	return &Assembler{engine: engine, layout: l, log: log}
}

// Assemble recognizes pages and publishes the text artifact for doc,
// returning its path. pages must be ordered by index starting at zero.
// bar may be nil.
//
// An OCR failure is returned as a *types.StageError; any other error is a
// filesystem failure. In both cases the partial file is removed.
func (a *Assembler) Assemble(ctx context.Context, doc types.SourceDocument, pages []types.PageImage, bar *progress.Bar) (string, error) {
	for i, p := range pages {
		if p.Index != i {
			return "", fmt.Errorf("page %d of %s out of order: have index %d", i, doc.Name, p.Index)
		}
	}

	base := doc.Base()
	partial := a.layout.PartialPath(base)
	final := a.layout.ParsedPath(base)

	if err := os.MkdirAll(a.layout.Root, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(partial)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", partial, err)
	}

	if err := a.writePages(ctx, f, doc, pages, bar); err != nil {
		f.Close()
		discard(partial)
		return "", err
	}
	if err := f.Close(); err != nil {
		discard(partial)
		return "", fmt.Errorf("closing %s: %w", partial, err)
	}
	if err := os.Rename(partial, final); err != nil {
		discard(partial)
		return "", fmt.Errorf("publishing %s: %w", final, err)
	}

	a.log.Debug().Str("document", doc.Name).Str("path", final).Int("pages", len(pages)).Msg("text artifact written")
	return final, nil
}

func (a *Assembler) writePages(ctx context.Context, f *os.File, doc types.SourceDocument, pages []types.PageImage, bar *progress.Bar) error {
	var d dehyphenator
	for _, p := range pages {
		text, err := a.engine.Recognize(ctx, p.Path)
		if err != nil {
			return types.OCRError(doc.Name, fmt.Errorf("page %d: %w", p.Index, err))
		}
		a.log.Debug().Str("document", doc.Name).Int("page", p.Index).Int("chars", len(text)).Msg("page recognized")

		if _, err := f.WriteString(d.next(text)); err != nil {
			return fmt.Errorf("writing page %d of %s: %w", p.Index, doc.Name, err)
		}
		bar.Add(1)
	}
	if _, err := f.WriteString(d.flush()); err != nil {
		return fmt.Errorf("writing %s: %w", doc.Name, err)
	}
	return nil
}

// discard removes a partial artifact. One that survives is harmless: no
// state check or keyword scan looks at .part files.
func discard(path string) {
	_ = os.Remove(path)
}
