// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("input path not found")

	// ErrInvalidInputType is returned when a single-file input is not a PDF.
	ErrInvalidInputType = errors.New("input file is not a pdf")
)

// Stage names the external collaborator that failed while processing a
// document.
type Stage string

const (
	StageRasterize Stage = "rasterize"
	StageOCR       Stage = "ocr"
)

// StageError is a failure inside the rasterizer or OCR engine. It aborts
// only the document named in Document.
type StageError struct {
	Stage    Stage
	Document string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Document, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// RasterizationError wraps a page rendering failure for document.
func RasterizationError(document string, err error) *StageError {
	return &StageError{Stage: StageRasterize, Document: document, Err: err}
}

// OCRError wraps a text recognition failure for document.
func OCRError(document string, err error) *StageError {
	return &StageError{Stage: StageOCR, Document: document, Err: err}
}

// IsStageError reports whether err is (or wraps) a StageError.
func IsStageError(err error) bool {
	var se *StageError
	return errors.As(err, &se)
}
