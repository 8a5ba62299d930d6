//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Parse builds the CLI and parses the PDFs under $PDF_INPUT (default "input").
func Parse() error {
	mg.Deps(Build, Init)
	input := os.Getenv("PDF_INPUT")
	if input == "" {
		input = "input"
	}
	return sh.RunV(binPath(), "--progress", input)
}

// Match re-runs keyword triage over parsed text using $PDF_KEYWORDS (comma separated).
func Match() error {
	mg.Deps(Build)
	keywords := os.Getenv("PDF_KEYWORDS")
	if keywords == "" {
		return fmt.Errorf("PDF_KEYWORDS is not set")
	}
	return sh.RunV(binPath(), "--match-only", "--keywords", keywords)
}

// Status builds the CLI and prints the state of the PDFs under $PDF_INPUT.
func Status() error {
	mg.Deps(Build)
	input := os.Getenv("PDF_INPUT")
	if input == "" {
		input = "input"
	}
	return sh.RunV(binPath(), "status", input)
}

func binPath() string {
	return "./" + binDir + "/" + binName
}
