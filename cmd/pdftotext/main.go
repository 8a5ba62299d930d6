// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdftotext CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftotext/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd parses PDFs and triages the resulting text by keyword.
var rootCmd = &cobra.Command{
	Use:   "pdftotext [path]",
	Short: "OCR scanned PDFs to text and sort the results by keyword",
	Long: `pdftotext renders each page of a scanned PDF to an image, runs OCR over the
images, and writes one text file per document into the output directory.
Text files that contain any of the given keywords are then moved into the
matches/ subdirectory.

path may be a single PDF or a directory of PDFs. Documents that were already
parsed, matched, or skipped for size are not processed again unless
--reprocess is given. Documents larger than --max-size are recorded under
skipped/ and never rendered.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runParse,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdftotext.yaml or ~/.config/pdftotext/pdftotext.yaml)")
	pf.StringP("output-directory", "O", types.DefaultOutputDir, "directory for parsed, matched, skipped, and converted files")
	pf.Float64P("max-size", "X", types.DefaultMaxSizeKB, "maximum file size to convert, in KB")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.Bool("log-json", false, "log as JSON lines instead of console text")

	f := rootCmd.Flags()
	f.StringSliceP("keywords", "K", nil, "keyword to search for in parsed text (case-sensitive); repeat -K or separate terms with commas, e.g. -K invoice -K receipt")
	f.String("keywords-file", "", "YAML file with additional keywords")
	f.BoolP("match-only", "M", false, "skip PDF parsing; only run keyword matching")
	f.BoolP("reprocess", "R", false, "reprocess PDFs that were already parsed, matched, or skipped")
	f.BoolP("keep-converted", "k", false, "keep the page images converted from each PDF")
	f.BoolP("progress", "p", false, "display progress bars")
	f.Float64("dpi", types.DefaultDPI, "rendering resolution for page images")
	f.String("lang", types.DefaultLanguage, "tesseract language(s), e.g. eng or eng+deu")
	f.String("ocr-backend", string(types.BackendGosseract), "ocr backend: gosseract or tesseract")
	f.String("image-format", string(types.FormatJPEG), "page image format: jpeg, png, or tiff")
	f.String("match-strategy", string(types.StrategyExact), "keyword matching: exact or similarity")
	f.Int("similarity-threshold", types.DefaultSimilarityThreshold, "token-set ratio (0-100) a keyword must exceed under the similarity strategy")
	f.String("report", "", "write a YAML run report to this path")

	_ = viper.BindPFlags(pf)
	_ = viper.BindPFlags(f)
}

func initConfig() {
	cfgFile := viper.GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftotext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftotext"))
		}
	}

	viper.SetEnvPrefix("PDFTOTEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
