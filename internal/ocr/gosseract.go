// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// GosseractEngine recognizes text through libtesseract. A fresh client is
// created per page so that no recognizer state leaks between pages.
type GosseractEngine struct {
	opts          Options
	clientFactory func() *gosseract.Client
}

// NewGosseractEngine returns a libtesseract-backed Engine.
func NewGosseractEngine(opts Options) *GosseractEngine {
	return &GosseractEngine{opts: opts, clientFactory: gosseract.NewClient}
}

func (e *GosseractEngine) Name() string { return "gosseract" }

// Recognize runs OCR on imagePath. The call into libtesseract cannot be
// interrupted; ctx is only checked before it starts.
func (e *GosseractEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetLanguage(e.opts.languages()...); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if e.opts.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(int(e.opts.DPI))); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}
	if err := c.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("set image %s: %w", imagePath, err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize %s: %w", imagePath, err)
	}
	return text, nil
}
