// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package raster

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/tiff"

	"github.com/pdiddy/pdftotext/pkg/types"
)

// jpegQuality is high enough that compression artifacts do not hurt OCR.
const jpegQuality = 95

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format types.ImageFormat) error {
	switch format {
	case types.FormatPNG:
		return png.Encode(w, img)
	case types.FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
}
