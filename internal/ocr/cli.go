// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pdftotext/internal/toolchain"
)

// CLIEngine recognizes text by running the tesseract binary once per page.
type CLIEngine struct {
	tool toolchain.Tool
	opts Options
}

// NewCLIEngine returns an Engine that drives tool, which must accept
// tesseract's command-line arguments.
func NewCLIEngine(tool toolchain.Tool, opts Options) *CLIEngine {
	return &CLIEngine{tool: tool, opts: opts}
}

func (e *CLIEngine) Name() string { return e.tool.Name() }

// Recognize runs `tesseract <image> stdout -l <lang>`. The trailing form
// feed tesseract emits as a page separator is dropped.
func (e *CLIEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout", "-l", strings.Join(e.opts.languages(), "+")}
	if e.opts.DPI > 0 {
		args = append(args, "--dpi", fmt.Sprint(int(e.opts.DPI)))
	}

	var out bytes.Buffer
	if err := e.tool.Run(ctx, args, &out); err != nil {
		return "", fmt.Errorf("recognize %s: %w", imagePath, err)
	}
	return strings.TrimSuffix(out.String(), "\f"), nil
}
