// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftotext/internal/discover"
	"github.com/pdiddy/pdftotext/internal/inspect"
	"github.com/pdiddy/pdftotext/internal/layout"
)

var statusCmd = &cobra.Command{
	Use:   "status <path>",
	Short: "Show the processing state of each PDF without changing anything",
	Long: `Status lists every PDF under path with its size, page count, and where it
stands in the output directory: new, parsed, matched, or skipped. Nothing is
written or moved.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().Bool("no-pages", false, "do not open PDFs to count pages")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	docs, err := discover.Discover(args[0])
	if err != nil {
		return err
	}

	maxSize := viper.GetFloat64("max-size")
	if maxSize <= 0 {
		return fmt.Errorf("max size must be positive, got %v", maxSize)
	}

	var counter inspect.PageCounter
	if noPages, _ := cmd.Flags().GetBool("no-pages"); !noPages {
		counter = inspect.NewPDFCPUCounter()
	}

	entries, err := inspect.Inspect(docs, layout.New(viper.GetString("output-directory")), maxSize, counter)
	if err != nil {
		return err
	}
	return inspect.Print(cmd.OutOrStdout(), entries)
}
