// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleanup removes the transient page images of a document.
package cleanup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdftotext/pkg/types"
)

// RemovePages deletes the image file of every page and then removes dir if
// it is left empty. Images belonging to other documents are never touched,
// and a non-empty dir is kept. Missing files are not an error.
func RemovePages(pages []types.PageImage, dir string, log zerolog.Logger) error {
	for _, p := range pages {
		log.Debug().Str("path", p.Path).Msg("removing page image")
		if err := os.Remove(p.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("removing page image %s: %w", p.Path, err)
		}
	}
	return removeIfEmpty(dir)
}

func removeIfEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	if len(entries) > 0 {
		return nil
	}
	if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}
