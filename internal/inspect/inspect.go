// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inspect reports where each input document stands without changing
// anything on disk.
package inspect

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// PageCounter reports the number of pages in a PDF.
type PageCounter interface {
	PageCount(path string) (int, error)
}

// PDFCPUCounter counts pages by parsing the PDF structure with pdfcpu,
// without rendering anything.
type PDFCPUCounter struct {
	conf *model.Configuration
}

// NewPDFCPUCounter returns a PageCounter that tolerates minor PDF format
// violations, which are common in scanner output.
func NewPDFCPUCounter() *PDFCPUCounter {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPUCounter{conf: conf}
}

func (c *PDFCPUCounter) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, c.conf)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Entry describes one document.
type Entry struct {
	Document types.SourceDocument
	State    types.DocumentState

	// Admissible reports whether the size gate would let the document through.
	Admissible bool

	// Pages is the page count, or -1 when the PDF could not be read.
	Pages int
}

// Inspect derives an Entry for every document. counter may be nil, in which
// case page counts are left unknown.
func Inspect(docs []types.SourceDocument, l layout.Layout, maxSizeKB float64, counter PageCounter) ([]Entry, error) {
	entries := make([]Entry, 0, len(docs))
	for _, doc := range docs {
		state, err := l.State(doc.Base())
		if err != nil {
			return nil, err
		}
		e := Entry{
			Document:   doc,
			State:      state,
			Admissible: doc.SizeKB() <= maxSizeKB,
			Pages:      -1,
		}
		if counter != nil {
			if n, err := counter.PageCount(doc.Path); err == nil {
				e.Pages = n
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Summary counts entries per state.
func Summary(entries []Entry) map[types.DocumentState]int {
	counts := make(map[types.DocumentState]int)
	for _, e := range entries {
		counts[e.State]++
	}
	return counts
}

// Print writes entries as an aligned table followed by per-state totals.
func Print(w io.Writer, entries []Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOCUMENT\tSTATE\tSIZE (KB)\tPAGES\tSIZE GATE")
	for _, e := range entries {
		pages := "?"
		if e.Pages >= 0 {
			pages = fmt.Sprint(e.Pages)
		}
		gate := "admit"
		if !e.Admissible {
			gate = "reject"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\n", e.Document.Name, e.State, e.Document.SizeKB(), pages, gate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := Summary(entries)
	_, err := fmt.Fprintf(w, "\n%d document(s): %d new, %d parsed, %d matched, %d skipped\n",
		len(entries), counts[types.StateNew], counts[types.StateParsed], counts[types.StateMatched], counts[types.StateSkipped])
	return err
}
