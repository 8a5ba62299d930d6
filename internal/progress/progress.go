// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package progress renders optional progress bars on a terminal. Bars are
// purely observational: a nil *Bar accepts every call and draws nothing, so
// callers never branch on whether progress display is enabled.
package progress

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Factory creates bars when enabled and nil bars otherwise.
type Factory struct {
	enabled bool
	w       io.Writer
}

// NewFactory returns a Factory drawing to w when enabled is true.
func NewFactory(enabled bool, w io.Writer) Factory {
	return Factory{enabled: enabled, w: w}
}

// Bar is a single progress bar. The zero value and nil are no-ops.
type Bar struct {
	bar *progressbar.ProgressBar
}

// New returns a bar counting to total, or nil when progress is disabled.
func (f Factory) New(total int, description string) *Bar {
	if !f.enabled || total <= 0 {
		return nil
	}
	return &Bar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(f.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)}
}

// Add advances the bar by n.
func (b *Bar) Add(n int) {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Add(n)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b == nil || b.bar == nil {
		return
	}
	_ = b.bar.Finish()
}
