// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ocr turns page images into text. Two backends are provided: the
// Tesseract C API through gosseract, and the tesseract command-line tool.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pdftotext/internal/toolchain"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// Engine recognizes the text of one page image. Reading order is the only
// layout guarantee.
type Engine interface {
	// Name identifies the backend in logs.
	Name() string

	// Recognize returns the text found in the image at imagePath.
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// Options configure a backend.
type Options struct {
	// Language is a Tesseract language list such as "eng" or "eng+deu".
	Language string

	// DPI is the resolution the image was rendered at. Zero leaves it to
	// Tesseract to guess.
	DPI float64
}

func (o Options) languages() []string {
	if o.Language == "" {
		return []string{types.DefaultLanguage}
	}
	return strings.Split(o.Language, "+")
}

// New builds the engine selected by backend.
func New(backend types.OCRBackend, opts Options) (Engine, error) {
	switch backend {
	case types.BackendGosseract:
		return NewGosseractEngine(opts), nil
	case types.BackendTesseract:
		tool, err := toolchain.Detect("tesseract")
		if err != nil {
			return nil, fmt.Errorf("tesseract backend unavailable: %w", err)
		}
		return NewCLIEngine(tool, opts), nil
	default:
		return nil, fmt.Errorf("unknown ocr backend %q", backend)
	}
}
