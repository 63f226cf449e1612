package captures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/averros/tidydesk/models"
	"github.com/averros/tidydesk/pkg/cache"
	"github.com/averros/tidydesk/pkg/classifier"
	dbpkg "github.com/averros/tidydesk/pkg/db"
	"github.com/averros/tidydesk/pkg/langid"
	"github.com/averros/tidydesk/pkg/ocr"
	"github.com/averros/tidydesk/pkg/processor"
	"github.com/averros/tidydesk/pkg/report"
	"github.com/averros/tidydesk/pkg/storage"
	"github.com/averros/tidydesk/pkg/watcher"
)

// newLogger builds the slog logger shared by the captures commands.
func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// capturesConfig loads the config file and applies command-line overrides.
func capturesConfig(c *cli.Context) (models.CapturesConfig, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return models.CapturesConfig{}, err
	}
	cc := cfg.Captures
	if c.IsSet("input") {
		cc.InputDir = c.String("input")
	}
	if c.IsSet("output") {
		cc.OutputFile = c.String("output")
	}
	if c.IsSet("interval") {
		cc.PollInterval = c.Duration("interval")
	}
	return cc, nil
}

// buildProcessor wires a Processor. The returned close func releases the
// run journal and is always safe to call.
func buildProcessor(cc models.CapturesConfig, logger *slog.Logger) (*processor.Processor, func(), error) {
	if err := os.MkdirAll(cc.InputDir, 0755); err != nil {
		return nil, func() {}, fmt.Errorf("failed to create input dir: %w", err)
	}

	journal, err := dbpkg.Open(cc.DBFile)
	if err != nil {
		// The journal is a convenience; a broken DB must not block runs.
		logger.Warn("failed to open run journal", "error", err)
		journal = nil
	}
	closeFn := func() {
		if journal != nil {
			journal.Close()
		}
	}

	proc := processor.New(
		cc,
		logger,
		cache.NewStore(cacheFilePath(cc)),
		classifier.NewKeyword(cc.ExtraCategories),
		ocr.New(cc.TesseractPath, cc.OCRLanguages),
		langid.New(),
		report.NewGenerator(&storage.Storage{}),
		journal,
	)
	return proc, closeFn, nil
}

// cacheFilePath anchors a relative cache file next to the input dir.
func cacheFilePath(cc models.CapturesConfig) string {
	if filepath.IsAbs(cc.CacheFile) {
		return cc.CacheFile
	}
	return filepath.Join(filepath.Dir(cc.InputDir), cc.CacheFile)
}

// ProcessAction runs the capture processor once.
func ProcessAction(c *cli.Context) error {
	logger := newLogger(c)
	cc, err := capturesConfig(c)
	if err != nil {
		return err
	}
	proc, closeFn, err := buildProcessor(cc, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	summary, err := proc.Run(c.Context, "manual")
	if err != nil {
		if errors.Is(err, processor.ErrBusy) {
			fmt.Println("Another capture run is already in progress; nothing to do.")
			return nil
		}
		return err
	}

	printRunSummary(summary)
	return nil
}

func printRunSummary(summary *models.RunSummary) {
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("PROCESSING COMPLETE")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Processed this run: %d\n", summary.Processed)
	fmt.Printf("Skipped (already processed): %d\n", summary.Skipped)
	if summary.Failed > 0 {
		fmt.Printf("OCR failures: %d\n", summary.Failed)
	}
	fmt.Printf("Total captures: %d\n", summary.Total)
	fmt.Printf("Categories in report: %d\n", summary.Categories)
	fmt.Printf("Run ID: %s\n", summary.RunID)
}

// WatchAction monitors the input folder and reruns the processor on new
// images. --poll switches from fsnotify events to interval scanning.
func WatchAction(c *cli.Context) error {
	logger := newLogger(c)
	cc, err := capturesConfig(c)
	if err != nil {
		return err
	}
	proc, closeFn, err := buildProcessor(cc, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	run := func(ctx context.Context, trigger string) error {
		summary, err := proc.Run(ctx, trigger)
		if err != nil {
			if errors.Is(err, processor.ErrBusy) {
				return nil // dropped, by contract
			}
			return err
		}
		printRunSummary(summary)
		fmt.Println("Waiting for new captures...")
		return nil
	}

	w := watcher.New(cc.InputDir, cc.SettleDelay, cc.DebounceWindow, cc.PollInterval, logger, run)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Catch up on anything that arrived while the watcher was down.
	if err := run(ctx, "manual"); err != nil {
		logger.Error("initial run failed", "error", err)
	}

	if c.Bool("poll") {
		return w.Poll(ctx)
	}
	return w.Watch(ctx)
}

// ClearCacheAction drops the processed-file cache so the next run
// reprocesses everything.
func ClearCacheAction(c *cli.Context) error {
	cc, err := capturesConfig(c)
	if err != nil {
		return err
	}

	store := cache.NewStore(cacheFilePath(cc))
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("Processed-file cache cleared. Next run will reprocess all captures.")
	return nil
}
