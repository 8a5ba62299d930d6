// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages with MuPDF through go-fitz.
type FitzRasterizer struct{}

// NewFitzRasterizer returns a MuPDF-backed Rasterizer.
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

// Rasterize opens pdfPath and renders each page at dpi. The context is
// checked between pages; a page already being rendered is not interrupted.
func (r *FitzRasterizer) Rasterize(ctx context.Context, pdfPath string, dpi float64, fn PageFunc) error {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer doc.Close()

	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.ImageDPI(n, dpi)
		if err != nil {
			return fmt.Errorf("rendering page %d: %w", n, err)
		}
		if err := fn(n, img); err != nil {
			return err
		}
	}
	return nil
}
