// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdftotext/internal/layout"
	"github.com/pdiddy/pdftotext/internal/progress"
	"github.com/pdiddy/pdftotext/internal/raster"
	"github.com/pdiddy/pdftotext/pkg/types"
)

// fakeRasterizer renders a configured number of blank pages per PDF name
// and counts calls.
type fakeRasterizer struct {
	pages map[string]int
	errs  map[string]error
	calls []string
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, pdfPath string, dpi float64, fn raster.PageFunc) error {
	name := filepath.Base(pdfPath)
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return err
	}
	n, ok := f.pages[name]
	if !ok {
		n = 1
	}
	for i := 0; i < n; i++ {
		if err := fn(i, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
			return err
		}
	}
	return nil
}

// fakeEngine returns text keyed by page image file name (e.g. "a_0.jpg").
type fakeEngine struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	name := filepath.Base(imagePath)
	if err := f.errs[name]; err != nil {
		return "", err
	}
	return f.texts[name], nil
}

func writePDF(t *testing.T, dir, name string, sizeKB int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), make([]byte, sizeKB*1024), 0o644))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func parseConfig() types.ParseConfig {
	return types.DefaultConfig().Parse
}

func newPipeline(cfg types.ParseConfig, l layout.Layout, r raster.Rasterizer, e *fakeEngine) *Pipeline {
	return NewPipeline(cfg, l, r, e, progress.NewFactory(false, io.Discard), zerolog.Nop())
}

func TestConvertDocument(t *testing.T) {
	in := t.TempDir()
	writePDF(t, in, "a.pdf", 50)
	l := layout.New(t.TempDir())
	r := &fakeRasterizer{pages: map[string]int{"a.pdf": 2}}
	e := &fakeEngine{texts: map[string]string{"a_0.jpg": "exam-\nple ", "a_1.jpg": "page two"}}

	doc := types.NewSourceDocument(filepath.Join(in, "a.pdf"), 50*1024)
	res, err := newPipeline(parseConfig(), l, r, e).ConvertDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, l.ParsedPath("a"), res.Artifact)

	data, err := os.ReadFile(res.Artifact)
	require.NoError(t, err)
	assert.Equal(t, "example page two", string(data))
	assert.False(t, exists(l.ConvertedDir()), "page images and converted dir are cleaned up")
}

func TestConvertDocumentKeepConverted(t *testing.T) {
	in := t.TempDir()
	writePDF(t, in, "a.pdf", 1)
	l := layout.New(t.TempDir())
	cfg := parseConfig()
	cfg.KeepConverted = true
	r := &fakeRasterizer{pages: map[string]int{"a.pdf": 3}}

	doc := types.NewSourceDocument(filepath.Join(in, "a.pdf"), 1024)
	_, err := newPipeline(cfg, l, r, &fakeEngine{}).ConvertDocument(context.Background(), doc)
	require.NoError(t, err)

	entries, err := os.ReadDir(l.ConvertedDir())
	require.NoError(t, err)
	assert.Len(t, entries, 3, "exactly one image per page remains")
	for i := 0; i < 3; i++ {
		assert.True(t, exists(l.PageImagePath("a", i, types.FormatJPEG)))
	}
}

func TestConvertDocumentTooLargeNeverRasterized(t *testing.T) {
	in := t.TempDir()
	writePDF(t, in, "b.pdf", 6000)
	l := layout.New(t.TempDir())
	r := &fakeRasterizer{}

	doc := types.NewSourceDocument(filepath.Join(in, "b.pdf"), 6000*1024)
	res, err := newPipeline(parseConfig(), l, r, &fakeEngine{}).ConvertDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, OutcomeTooLarge, res.Outcome)
	assert.Empty(t, r.calls)
	assert.True(t, exists(l.SkipMarkerPath("b")))
	assert.False(t, exists(l.ParsedPath("b")))
}

func TestConvertDocumentStageFailures(t *testing.T) {
	tests := []struct {
		name      string
		r         *fakeRasterizer
		e         *fakeEngine
		wantStage types.Stage
	}{
		{
			name:      "rasterizer failure",
			r:         &fakeRasterizer{errs: map[string]error{"a.pdf": errors.New("corrupt xref table")}},
			e:         &fakeEngine{},
			wantStage: types.StageRasterize,
		},
		{
			name:      "ocr failure on second page",
			r:         &fakeRasterizer{pages: map[string]int{"a.pdf": 3}},
			e:         &fakeEngine{errs: map[string]error{"a_1.jpg": errors.New("leptonica read error")}},
			wantStage: types.StageOCR,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := t.TempDir()
			writePDF(t, in, "a.pdf", 1)
			l := layout.New(t.TempDir())

			doc := types.NewSourceDocument(filepath.Join(in, "a.pdf"), 1024)
			res, err := newPipeline(parseConfig(), l, tt.r, tt.e).ConvertDocument(context.Background(), doc)
			require.NoError(t, err, "stage failures are contained to the document")

			assert.Equal(t, OutcomeFailed, res.Outcome)
			var se *types.StageError
			require.ErrorAs(t, res.Err, &se)
			assert.Equal(t, tt.wantStage, se.Stage)

			state, err := l.State("a")
			require.NoError(t, err)
			assert.Equal(t, types.StateNew, state, "a failed document can be retried")
			assert.False(t, exists(l.PartialPath("a")))
			assert.False(t, exists(l.ConvertedDir()), "page images are cleaned up on failure")
		})
	}
}

func TestConvertDocumentReprocessRestoresExclusivePlacement(t *testing.T) {
	in := t.TempDir()
	writePDF(t, in, "a.pdf", 1)
	l := layout.New(t.TempDir())
	require.NoError(t, os.MkdirAll(l.MatchesDir(), 0o755))
	require.NoError(t, os.WriteFile(l.MatchedPath("a"), []byte("old INVOICE"), 0o644))
	cfg := parseConfig()
	cfg.Reprocess = true
	r := &fakeRasterizer{}
	e := &fakeEngine{texts: map[string]string{"a_0.jpg": "new text"}}

	doc := types.NewSourceDocument(filepath.Join(in, "a.pdf"), 1024)
	res, err := newPipeline(cfg, l, r, e).ConvertDocument(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, OutcomeParsed, res.Outcome)
	assert.Equal(t, []string{"a.pdf"}, r.calls)
	assert.True(t, exists(l.ParsedPath("a")))
	assert.False(t, exists(l.MatchedPath("a")), "stale matched copy is removed")
}

func TestConvertBatch(t *testing.T) {
	in := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"} {
		writePDF(t, in, name, 1)
	}
	writePDF(t, in, "big.pdf", 6000)
	l := layout.New(t.TempDir())
	require.NoError(t, os.WriteFile(l.ParsedPath("b"), []byte("existing"), 0o644))

	r := &fakeRasterizer{errs: map[string]error{"c.pdf": errors.New("bad pdf")}}
	docs := []types.SourceDocument{
		types.NewSourceDocument(filepath.Join(in, "a.pdf"), 1024),
		types.NewSourceDocument(filepath.Join(in, "b.pdf"), 1024),
		types.NewSourceDocument(filepath.Join(in, "big.pdf"), 6000*1024),
		types.NewSourceDocument(filepath.Join(in, "c.pdf"), 1024),
		types.NewSourceDocument(filepath.Join(in, "d.pdf"), 1024),
	}

	var out bytes.Buffer
	result, err := newPipeline(parseConfig(), l, r, &fakeEngine{}).ConvertBatch(context.Background(), docs, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Parsed)
	assert.Equal(t, 1, result.AlreadyProcessed)
	assert.Equal(t, 1, result.TooLarge)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 2, result.Skipped())
	assert.Equal(t, 5, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "c.pdf", result.Failures[0].Document)
	assert.Equal(t, []string{"a.pdf", "c.pdf", "d.pdf"}, r.calls, "a failure does not stop the batch")

	log := out.String()
	assert.Contains(t, log, "parsed:  a.pdf")
	assert.Contains(t, log, "skipped: b.pdf (already processed)")
	assert.Contains(t, log, "skipped: big.pdf")
	assert.Contains(t, log, "failed:  c.pdf")
}

func TestConvertBatchDuplicateBaseName(t *testing.T) {
	in := t.TempDir()
	l := layout.New(t.TempDir())
	r := &fakeRasterizer{}
	docs := []types.SourceDocument{
		types.NewSourceDocument(filepath.Join(in, "a.PDF"), 1024),
		types.NewSourceDocument(filepath.Join(in, "a.pdf"), 1024),
	}

	var out bytes.Buffer
	result, err := newPipeline(parseConfig(), l, r, &fakeEngine{}).ConvertBatch(context.Background(), docs, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Parsed)
	assert.Zero(t, result.AlreadyProcessed, "the second document is not mistaken for processed")
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "a.pdf", result.Failures[0].Document)
	assert.Contains(t, result.Failures[0].Error, "a.PDF")
	assert.Equal(t, []string{"a.PDF"}, r.calls)
	assert.Contains(t, out.String(), "failed:  a.pdf")
}

func TestConvertBatchStopsOnCancel(t *testing.T) {
	in := t.TempDir()
	writePDF(t, in, "a.pdf", 1)
	l := layout.New(t.TempDir())
	r := &fakeRasterizer{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	docs := []types.SourceDocument{types.NewSourceDocument(filepath.Join(in, "a.pdf"), 1024)}
	_, err := newPipeline(parseConfig(), l, r, &fakeEngine{}).ConvertBatch(ctx, docs, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, r.calls)
}

func TestConvertBatchFatalFilesystemError(t *testing.T) {
	in := t.TempDir()
	writePDF(t, in, "big.pdf", 6000)
	root := t.TempDir()
	l := layout.New(root)
	// A file where the skipped directory belongs makes the marker write fail.
	require.NoError(t, os.WriteFile(l.SkippedDir(), []byte("not a dir"), 0o644))

	docs := []types.SourceDocument{types.NewSourceDocument(filepath.Join(in, "big.pdf"), 6000*1024)}
	_, err := newPipeline(parseConfig(), l, &fakeRasterizer{}, &fakeEngine{}).ConvertBatch(context.Background(), docs, io.Discard)
	require.Error(t, err)
	assert.False(t, types.IsStageError(err))
}
