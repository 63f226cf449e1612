// Package processor orchestrates one full capture-processing run: scan the
// input folder, skip files the cache already knows, OCR and analyze the
// rest, persist the cache, journal the run, and regenerate the report.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"github.com/averros/tidydesk/internal/common"
	"github.com/averros/tidydesk/models"
	"github.com/averros/tidydesk/pkg/cache"
	"github.com/averros/tidydesk/pkg/classifier"
	"github.com/averros/tidydesk/pkg/db"
	"github.com/averros/tidydesk/pkg/ocr"
	"github.com/averros/tidydesk/pkg/report"
	"github.com/averros/tidydesk/pkg/wordfreq"
)

// ErrBusy is returned when another run holds the lock. Watch triggers
// arriving mid-run are dropped on this error, not queued.
var ErrBusy = errors.New("a capture run is already in progress")

// LanguageDetector guesses the language of extracted text. Empty string
// means undetermined.
type LanguageDetector interface {
	Detect(text string) string
}

// ImageFile is one candidate capture in the input directory.
type ImageFile struct {
	Name    string
	Path    string
	ModTime time.Time
}

// Processor holds the collaborators of a capture run. Build with New.
type Processor struct {
	cfg       models.CapturesConfig
	logger    *slog.Logger
	cache     *cache.Store
	keywords  *classifier.Keyword
	extractor ocr.TextExtractor
	langs     LanguageDetector
	reports   *report.Generator
	journal   *db.DB // optional; nil disables run journaling
	lock      *flock.Flock
}

// New wires a Processor from its collaborators. journal and langs may be
// nil; everything else is required.
func New(cfg models.CapturesConfig, logger *slog.Logger, store *cache.Store,
	keywords *classifier.Keyword, extractor ocr.TextExtractor,
	langs LanguageDetector, reports *report.Generator, journal *db.DB) *Processor {
	return &Processor{
		cfg:       cfg,
		logger:    logger,
		cache:     store,
		keywords:  keywords,
		extractor: extractor,
		langs:     langs,
		reports:   reports,
		journal:   journal,
		lock:      flock.New(filepath.Join(cfg.InputDir, cfg.LockFile)),
	}
}

// OCRAvailable reports whether the configured text extractor can run.
func (p *Processor) OCRAvailable() bool {
	return p.extractor.Available()
}

// Cache exposes the processed-file store for the stats and clear commands.
func (p *Processor) Cache() *cache.Store {
	return p.cache
}

// ListImages returns the image files directly under the input directory,
// sorted by modification time.
func (p *Processor) ListImages() ([]ImageFile, error) {
	entries, err := os.ReadDir(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", p.cfg.InputDir, err)
	}

	var files []ImageFile
	for _, entry := range entries {
		if entry.IsDir() || !common.IsImageFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			p.logger.Warn("failed to stat image", "file", entry.Name(), "error", err)
			continue
		}
		files = append(files, ImageFile{
			Name:    entry.Name(),
			Path:    filepath.Join(p.cfg.InputDir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

// Run executes one full pass. trigger names what started it (manual,
// watch, poll) and is recorded in the run journal. Returns ErrBusy when
// another run holds the lock.
func (p *Processor) Run(ctx context.Context, trigger string) (*models.RunSummary, error) {
	locked, err := p.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrBusy
	}
	defer p.lock.Unlock()

	summary := &models.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Trigger:   trigger,
	}

	if err := p.cache.Load(); err != nil {
		return nil, err
	}

	files, err := p.ListImages()
	if err != nil {
		return nil, err
	}
	summary.Total = len(files)

	if !p.OCRAvailable() {
		p.logger.Warn("tesseract not found, running in basic mode (no text extraction)")
	}

	var freqMaps []map[string]int
	for _, f := range files {
		if p.cache.IsProcessed(f.Name, f.ModTime) {
			summary.Skipped++
			continue
		}

		rec, ocrErr := p.processFile(ctx, f)
		if ocrErr != nil {
			p.logger.Warn("OCR failed", "file", f.Name, "error", ocrErr)
			summary.Failed++
		}
		p.cache.Mark(f.Name, f.ModTime, rec)
		summary.Processed++

		if rec.Text != "" {
			freqMaps = append(freqMaps, wordfreq.Frequencies(rec.Text))
		}
		p.logger.Info("processed capture",
			"file", f.Name, "category", rec.Category,
			"urls", len(rec.URLs), "language", rec.Language)
	}

	if err := p.cache.Save(); err != nil {
		p.logger.Error("failed to save cache", "error", err)
	}

	// The report covers the full set, cached and new alike.
	captures := p.allCaptures(files)
	categories := make(map[string]struct{})
	for _, c := range captures {
		categories[c.Category] = struct{}{}
	}
	summary.Categories = len(categories)

	if err := p.reports.Write(p.cfg.OutputFile, captures, p.OCRAvailable()); err != nil {
		return nil, err
	}

	summary.FinishedAt = time.Now()
	if p.journal != nil {
		top := wordfreq.Top(wordfreq.Merge(freqMaps), 25)
		if err := p.journal.InsertRun(*summary, top); err != nil {
			p.logger.Warn("failed to journal run", "error", err)
		}
	}

	return summary, nil
}

// processFile extracts everything from one new image. The returned record
// is always usable; the error only reports an OCR failure, which degrades
// the record to no-text/uncategorized.
func (p *Processor) processFile(ctx context.Context, f ImageFile) (cache.Record, error) {
	rec := cache.Record{
		Path:     f.Path,
		Category: classifier.DefaultCategory,
	}

	var ocrErr error
	if p.OCRAvailable() {
		text, err := p.extractor.ExtractText(ctx, f.Path)
		if err != nil {
			ocrErr = err
		} else {
			rec.Text = text
		}
	}

	rec.URLs = common.ExtractURLs(rec.Text)
	if rec.URLs == nil {
		rec.URLs = []string{}
	}
	if p.langs != nil && rec.Text != "" {
		rec.Language = p.langs.Detect(rec.Text)
	}
	rec.Category = p.keywords.Classify(rec.Text, rec.URLs)

	return rec, ocrErr
}

// allCaptures assembles report entries for every listed file from the
// cache, which at this point holds both old and freshly added records.
func (p *Processor) allCaptures(files []ImageFile) []models.Capture {
	captures := make([]models.Capture, 0, len(files))
	for _, f := range files {
		rec, ok := p.cache.Get(f.Name)
		if !ok {
			continue
		}
		name := f.Name
		captures = append(captures, models.Capture{
			FileName:    name,
			Description: strings.TrimSuffix(name, filepath.Ext(name)),
			Date:        common.DateFromFilename(name, f.ModTime),
			Text:        rec.Text,
			URLs:        rec.URLs,
			Language:    rec.Language,
			Category:    rec.Category,
		})
	}
	return captures
}
