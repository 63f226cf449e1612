package processor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"github.com/averros/tidydesk/models"
	"github.com/averros/tidydesk/pkg/cache"
	"github.com/averros/tidydesk/pkg/classifier"
	"github.com/averros/tidydesk/pkg/report"
	"github.com/averros/tidydesk/pkg/storage"
)

// fakeExtractor serves canned OCR text keyed by base file name.
type fakeExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (f *fakeExtractor) Available() bool { return true }

func (f *fakeExtractor) ExtractText(_ context.Context, path string) (string, error) {
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.texts[name], nil
}

func newTestProcessor(t *testing.T, extractor *fakeExtractor) (*Processor, models.CapturesConfig) {
	t.Helper()

	dir := t.TempDir()
	cfg := models.CapturesConfig{
		InputDir:   dir,
		OutputFile: filepath.Join(dir, "resources.md"),
		LockFile:   ".tidydesk.lock",
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := cache.NewStore(filepath.Join(dir, ".processed_files.json"))
	reports := report.NewGenerator(&storage.Storage{})

	p := New(cfg, logger, store, classifier.NewKeyword(nil), extractor, nil, reports, nil)
	return p, cfg
}

func writeImage(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("fake image"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"a.png": "Check github.com/foo",
		"b.jpg": "no links",
	}}
	p, cfg := newTestProcessor(t, extractor)
	writeImage(t, cfg.InputDir, "a.png")
	writeImage(t, cfg.InputDir, "b.jpg")

	summary, err := p.Run(context.Background(), "manual")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if summary.Total != 2 || summary.Processed != 2 || summary.Skipped != 0 {
		t.Errorf("summary = total %d processed %d skipped %d, want 2/2/0",
			summary.Total, summary.Processed, summary.Skipped)
	}

	a, ok := p.Cache().Get("a.png")
	if !ok {
		t.Fatal("a.png missing from cache")
	}
	if a.Category != "Development" {
		t.Errorf("a.png category = %q, want %q", a.Category, "Development")
	}
	if len(a.URLs) != 1 || a.URLs[0] != "https://github.com/foo" {
		t.Errorf("a.png URLs = %v, want one github URL", a.URLs)
	}

	b, ok := p.Cache().Get("b.jpg")
	if !ok {
		t.Fatal("b.jpg missing from cache")
	}
	if b.Category != classifier.DefaultCategory {
		t.Errorf("b.jpg category = %q, want %q", b.Category, classifier.DefaultCategory)
	}
	if len(b.URLs) != 0 {
		t.Errorf("b.jpg URLs = %v, want none", b.URLs)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "## Development") {
		t.Error("report missing Development section")
	}
}

func TestRun_SecondPassSkipsCached(t *testing.T) {
	extractor := &fakeExtractor{texts: map[string]string{
		"a.png": "Check github.com/foo",
		"b.jpg": "no links",
	}}
	p, cfg := newTestProcessor(t, extractor)
	writeImage(t, cfg.InputDir, "a.png")
	writeImage(t, cfg.InputDir, "b.jpg")

	if _, err := p.Run(context.Background(), "manual"); err != nil {
		t.Fatalf("first Run() failed: %v", err)
	}

	summary, err := p.Run(context.Background(), "manual")
	if err != nil {
		t.Fatalf("second Run() failed: %v", err)
	}
	if summary.Processed != 0 || summary.Skipped != 2 {
		t.Errorf("second pass processed %d skipped %d, want 0/2",
			summary.Processed, summary.Skipped)
	}

	// Touching one file invalidates only its cache entry.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(filepath.Join(cfg.InputDir, "a.png"), future, future); err != nil {
		t.Fatal(err)
	}

	summary, err = p.Run(context.Background(), "manual")
	if err != nil {
		t.Fatalf("third Run() failed: %v", err)
	}
	if summary.Processed != 1 || summary.Skipped != 1 {
		t.Errorf("third pass processed %d skipped %d, want 1/1",
			summary.Processed, summary.Skipped)
	}
}

func TestRun_OCRFailureDegrades(t *testing.T) {
	extractor := &fakeExtractor{
		texts: map[string]string{},
		errs:  map[string]error{"a.png": errors.New("tesseract exploded")},
	}
	p, cfg := newTestProcessor(t, extractor)
	writeImage(t, cfg.InputDir, "a.png")

	summary, err := p.Run(context.Background(), "manual")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if summary.Failed != 1 || summary.Processed != 1 {
		t.Errorf("failed %d processed %d, want 1/1", summary.Failed, summary.Processed)
	}

	// The file is still cached so it is not retried endlessly.
	rec, ok := p.Cache().Get("a.png")
	if !ok {
		t.Fatal("failed file missing from cache")
	}
	if rec.Text != "" || rec.Category != classifier.DefaultCategory {
		t.Errorf("degraded record = %+v, want empty text and default category", rec)
	}
}

func TestRun_Busy(t *testing.T) {
	p, cfg := newTestProcessor(t, &fakeExtractor{})

	other := flock.New(filepath.Join(cfg.InputDir, cfg.LockFile))
	locked, err := other.TryLock()
	if err != nil || !locked {
		t.Fatalf("could not take the lock externally: locked=%v err=%v", locked, err)
	}
	defer other.Unlock()

	if _, err := p.Run(context.Background(), "manual"); !errors.Is(err, ErrBusy) {
		t.Errorf("Run() error = %v, want ErrBusy", err)
	}
}
