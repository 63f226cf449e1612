package models

import (
	"strings"
	"time"
)

// Capture represents one analyzed screenshot: the file identity plus
// everything extracted from it.
type Capture struct {
	FileName    string
	Description string
	Date        string
	Text        string
	URLs        []string
	Language    string
	Category    string
}

// WordCount returns the number of whitespace-separated words in the
// extracted text.
func (c *Capture) WordCount() int {
	return len(strings.Fields(c.Text))
}

// HasText reports whether OCR produced any usable text for this capture.
func (c *Capture) HasText() bool {
	return strings.TrimSpace(c.Text) != ""
}

// RunSummary aggregates the outcome of one capture-processor run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Trigger    string // manual, watch, poll
	Total      int
	Processed  int
	Skipped    int
	Failed     int
	Categories int
}
