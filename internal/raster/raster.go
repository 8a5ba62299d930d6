// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package raster renders PDF pages to bitmaps and writes them to the
// transient converted area as page images.
package raster

import (
	"context"
	"fmt"
	"image"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// PageFunc receives each rendered page in order, starting at index 0.
// Returning an error stops rendering.
type PageFunc func(index int, img image.Image) error

// Rasterizer renders every page of a PDF at a fixed resolution. Pages are
// delivered one at a time so that a large document never holds more than
// one bitmap in memory.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string, dpi float64, fn PageFunc) error
}

// PageWriter renders documents through a Rasterizer and saves each page to
// the converted area.
type PageWriter struct {
	rasterizer Rasterizer
	layout     layout.Layout
	dpi        float64
	format     types.ImageFormat
	log        zerolog.Logger
}

// NewPageWriter creates a PageWriter.
func NewPageWriter(r Rasterizer, l layout.Layout, dpi float64, format types.ImageFormat, log zerolog.Logger) *PageWriter {
	return &PageWriter{rasterizer: r, layout: l, dpi: dpi, format: format, log: log}
}

// WritePages renders doc and writes one image file per page. The returned
// pages are in index order and include every file written, even when an
// error is returned, so the caller can clean them up.
//
// A failure inside the rasterizer is returned as a *types.StageError. A
// failure writing an image file is a plain filesystem error.
func (w *PageWriter) WritePages(ctx context.Context, doc types.SourceDocument) ([]types.PageImage, error) {
	if err := os.MkdirAll(w.layout.ConvertedDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating converted directory: %w", err)
	}

	base := doc.Base()
	var pages []types.PageImage
	var writeErr error

	err := w.rasterizer.Rasterize(ctx, doc.Path, w.dpi, func(index int, img image.Image) error {
		if index != len(pages) {
			return fmt.Errorf("page %d delivered out of order, expected %d", index, len(pages))
		}
		path := w.layout.PageImagePath(base, index, w.format)
		w.log.Debug().Str("document", doc.Name).Int("page", index).Str("path", path).Msg("saving page image")
		if err := writeImage(path, img, w.format); err != nil {
			writeErr = err
			return err
		}
		pages = append(pages, types.PageImage{Document: base, Index: index, Path: path})
		return nil
	})
	if writeErr != nil {
		return pages, writeErr
	}
	if err != nil {
		return pages, types.RasterizationError(doc.Name, err)
	}
	if len(pages) == 0 {
		return nil, types.RasterizationError(doc.Name, fmt.Errorf("document has no pages"))
	}

	w.log.Debug().Str("document", doc.Name).Int("pages", len(pages)).Msg("rasterized")
	return pages, nil
}

// writeImage encodes img to path. A file that could not be fully written is
// removed, since it is never reported as a page and cleanup would miss it.
func writeImage(path string, img image.Image, format types.ImageFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating page image %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encoding page image %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing page image %s: %w", path, err)
	}
	return nil
}
