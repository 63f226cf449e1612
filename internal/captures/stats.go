package captures

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"

	"github.com/averros/tidydesk/internal/common"
	"github.com/averros/tidydesk/pkg/cache"
	dbpkg "github.com/averros/tidydesk/pkg/db"
	"github.com/averros/tidydesk/pkg/ocr"
)

// statsFileLimit caps the per-file listing so huge folders stay readable.
const statsFileLimit = 10

// StatsAction prints the current state of the input folder and cache.
func StatsAction(c *cli.Context) error {
	cc, err := capturesConfig(c)
	if err != nil {
		return err
	}

	store := cache.NewStore(cacheFilePath(cc))
	if err := store.Load(); err != nil {
		return err
	}

	entries, err := os.ReadDir(cc.InputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot list %s: %v\n", cc.InputDir, err)
		return nil
	}

	type fileRow struct {
		name      string
		sizeKB    float64
		processed bool
	}
	var files []fileRow
	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !common.IsImageFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		done := store.IsProcessed(entry.Name(), info.ModTime())
		if done {
			processed++
		}
		files = append(files, fileRow{
			name:      entry.Name(),
			sizeKB:    float64(info.Size()) / 1024,
			processed: done,
		})
	}

	engine := ocr.New(cc.TesseractPath, cc.OCRLanguages)
	ocrState := "not available"
	if engine.Available() {
		ocrState = "enabled"
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("WEB CAPTURES STATS")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Input folder: %s\n", cc.InputDir)
	fmt.Printf("Report file:  %s\n", cc.OutputFile)
	fmt.Printf("OCR:          %s\n\n", ocrState)
	fmt.Printf("Total images: %d\n", len(files))
	fmt.Printf("Processed:    %d\n", processed)
	fmt.Printf("Pending:      %d\n\n", len(files)-processed)

	if len(files) == 0 {
		return nil
	}

	rows := make([][]string, 0, statsFileLimit)
	for i, f := range files {
		if i >= statsFileLimit {
			break
		}
		state := "pending"
		if f.processed {
			state = "processed"
		}
		rows = append(rows, []string{f.name, fmt.Sprintf("%.1f KB", f.sizeKB), state})
	}
	fmt.Println(renderTable(
		[]string{"File", "Size", "State"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
	))
	if len(files) > statsFileLimit {
		fmt.Printf("... and %d more\n", len(files)-statsFileLimit)
	}
	return nil
}

// HistoryAction lists recent capture runs from the journal.
func HistoryAction(c *cli.Context) error {
	cc, err := capturesConfig(c)
	if err != nil {
		return err
	}

	journal, err := dbpkg.Open(cc.DBFile)
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer journal.Close()

	runs, err := journal.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Run 'tidydesk captures process' first.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Trigger,
			fmt.Sprintf("%d", r.Total),
			fmt.Sprintf("%d", r.Processed),
			fmt.Sprintf("%d", r.Skipped),
			fmt.Sprintf("%d", r.Failed),
			fmt.Sprintf("%d", r.Categories),
		})
	}
	fmt.Println(renderTable(
		[]string{"Started", "Trigger", "Total", "New", "Skipped", "Failed", "Categories"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Printf("\nShowing %d run(s)\n", len(runs))
	return nil
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable renders a rounded-style table with per-column alignment.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, len(headers))
	for i := range headers {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
