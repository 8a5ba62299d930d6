// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

const (
	// DefaultMaxSizeKB is the default size gate ceiling (5 MB).
	DefaultMaxSizeKB = 5120.0

	// DefaultDPI is the default rasterization resolution.
	DefaultDPI = 500.0

	// DefaultLanguage is the default Tesseract language.
	DefaultLanguage = "eng"

	// DefaultOutputDir is the default base directory for all artifacts.
	DefaultOutputDir = "output"

	// DefaultSimilarityThreshold is the default ratio for the similarity strategy.
	DefaultSimilarityThreshold = 80
)

// OCRBackend identifies the OCR implementation.
type OCRBackend string

const (
	BackendGosseract OCRBackend = "gosseract"
	BackendTesseract OCRBackend = "tesseract"
)

// ImageFormat selects how page bitmaps are encoded in the converted area.
type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
	FormatTIFF ImageFormat = "tiff"
)

// Ext returns the file extension used for the format, without the dot.
func (f ImageFormat) Ext() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatTIFF:
		return "tiff"
	default:
		return "jpg"
	}
}

// MatchStrategy selects how keyword terms are tested against text.
type MatchStrategy string

const (
	// StrategyExact is case-sensitive substring containment.
	StrategyExact MatchStrategy = "exact"

	// StrategySimilarity is a token-set similarity ratio against a threshold.
	StrategySimilarity MatchStrategy = "similarity"
)

// ParseConfig holds settings for the rasterize/OCR/assemble stage.
type ParseConfig struct {
	// MaxSizeKB is the size gate ceiling. Documents strictly larger are skipped.
	MaxSizeKB float64 `json:"max_size_kb" yaml:"max_size_kb"`

	// Reprocess re-admits documents that already reached a terminal state.
	Reprocess bool `json:"reprocess" yaml:"reprocess"`

	// KeepConverted disables removal of page images after a document.
	KeepConverted bool `json:"keep_converted" yaml:"keep_converted"`

	// DPI is the rasterization resolution.
	DPI float64 `json:"dpi" yaml:"dpi"`

	// Language is the Tesseract language code (e.g. "eng", "eng+deu").
	Language string `json:"language" yaml:"language"`

	// Backend selects the OCR implementation.
	Backend OCRBackend `json:"backend" yaml:"backend"`

	// ImageFormat selects the page image encoding.
	ImageFormat ImageFormat `json:"image_format" yaml:"image_format"`
}

// MatchConfig holds settings for keyword triage.
type MatchConfig struct {
	// Keywords are the terms to look for. Empty disables matching.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Strategy selects exact containment or similarity scoring.
	Strategy MatchStrategy `json:"strategy" yaml:"strategy"`

	// Threshold is the similarity ratio (0-100) a term must exceed for StrategySimilarity.
	Threshold int `json:"threshold" yaml:"threshold"`
}

// Config is the resolved configuration for one run. It is built once by the
// CLI and handed to each component at construction.
type Config struct {
	// InputPath is the PDF file or directory to process.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputDir is the base for parsed text, matches, skipped markers, and
	// transient page images.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MatchOnly skips parsing and runs only keyword triage.
	MatchOnly bool `json:"match_only" yaml:"match_only"`

	// Progress enables progress bars on stderr.
	Progress bool `json:"progress" yaml:"progress"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose"`

	Parse ParseConfig `json:"parse" yaml:"parse"`
	Match MatchConfig `json:"match" yaml:"match"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Parse: ParseConfig{
			MaxSizeKB:   DefaultMaxSizeKB,
			DPI:         DefaultDPI,
			Language:    DefaultLanguage,
			Backend:     BackendGosseract,
			ImageFormat: FormatJPEG,
		},
		Match: MatchConfig{
			Strategy:  StrategyExact,
			Threshold: DefaultSimilarityThreshold,
		},
	}
}

// Validate checks the configuration for values no component can work with.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}
	if !c.MatchOnly && c.InputPath == "" {
		return fmt.Errorf("input path is required unless match-only is set")
	}
	if c.Parse.MaxSizeKB <= 0 {
		return fmt.Errorf("max size must be positive, got %v", c.Parse.MaxSizeKB)
	}
	if c.Parse.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.Parse.DPI)
	}
	switch c.Parse.Backend {
	case BackendGosseract, BackendTesseract:
	default:
		return fmt.Errorf("unknown ocr backend %q", c.Parse.Backend)
	}
	switch c.Parse.ImageFormat {
	case FormatJPEG, FormatPNG, FormatTIFF:
	default:
		return fmt.Errorf("unknown image format %q", c.Parse.ImageFormat)
	}
	switch c.Match.Strategy {
	case StrategyExact, StrategySimilarity:
	default:
		return fmt.Errorf("unknown match strategy %q", c.Match.Strategy)
	}
	if c.Match.Threshold < 0 || c.Match.Threshold > 100 {
		return fmt.Errorf("similarity threshold must be within 0-100, got %d", c.Match.Threshold)
	}
	return nil
}
