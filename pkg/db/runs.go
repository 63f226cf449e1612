package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/averros/tidydesk/models"
)

// Run is a journal row plus the decoded keyword list.
type Run struct {
	models.RunSummary
	TopKeywords []string
}

// InsertRun records a completed run.
func (db *DB) InsertRun(summary models.RunSummary, topKeywords []string) error {
	var keywords []byte
	if len(topKeywords) > 0 {
		var err error
		keywords, err = json.Marshal(topKeywords)
		if err != nil {
			return fmt.Errorf("failed to marshal keywords: %w", err)
		}
	}

	_, err := db.Exec(`
		INSERT INTO runs (run_id, started_at, finished_at, source, total_files, processed, skipped, failed, categories, top_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, summary.RunID,
		summary.StartedAt.UTC().Format(time.RFC3339),
		summary.FinishedAt.UTC().Format(time.RFC3339),
		summary.Trigger,
		summary.Total,
		summary.Processed,
		summary.Skipped,
		summary.Failed,
		summary.Categories,
		string(keywords),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT run_id, started_at, finished_at, source, total_files, processed, skipped, failed, categories, top_keywords
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished, keywords string
		if err := rows.Scan(&r.RunID, &started, &finished, &r.Trigger,
			&r.Total, &r.Processed, &r.Skipped, &r.Failed, &r.Categories, &keywords); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		if keywords != "" {
			_ = json.Unmarshal([]byte(keywords), &r.TopKeywords)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
