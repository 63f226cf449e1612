package db

import (
	"testing"
	"time"

	"github.com/averros/tidydesk/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestInsertAndListRuns(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	summaries := []models.RunSummary{
		{
			RunID:      "run-1",
			StartedAt:  base,
			FinishedAt: base.Add(2 * time.Second),
			Trigger:    "manual",
			Total:      3,
			Processed:  3,
			Categories: 2,
		},
		{
			RunID:      "run-2",
			StartedAt:  base.Add(time.Minute),
			FinishedAt: base.Add(time.Minute + time.Second),
			Trigger:    "watch",
			Total:      4,
			Processed:  1,
			Skipped:    3,
			Categories: 2,
		},
	}

	if err := db.InsertRun(summaries[0], []string{"github:3", "docker:2"}); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if err := db.InsertRun(summaries[1], nil); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	runs, err := db.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}

	// Newest first.
	if runs[0].RunID != "run-2" || runs[1].RunID != "run-1" {
		t.Errorf("run order = %s, %s; want run-2, run-1", runs[0].RunID, runs[1].RunID)
	}

	if runs[0].Trigger != "watch" || runs[0].Skipped != 3 {
		t.Errorf("run-2 = trigger %q skipped %d, want watch/3", runs[0].Trigger, runs[0].Skipped)
	}
	if len(runs[1].TopKeywords) != 2 || runs[1].TopKeywords[0] != "github:3" {
		t.Errorf("run-1 keywords = %v, want [github:3 docker:2]", runs[1].TopKeywords)
	}
	if !runs[1].StartedAt.Equal(base) {
		t.Errorf("run-1 started at %v, want %v", runs[1].StartedAt, base)
	}
}

func TestListRuns_Limit(t *testing.T) {
	db := setupTestDB(t)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		summary := models.RunSummary{
			RunID:      "run-" + string(rune('a'+i)),
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
			Trigger:    "manual",
		}
		if err := db.InsertRun(summary, nil); err != nil {
			t.Fatalf("InsertRun() failed: %v", err)
		}
	}

	runs, err := db.ListRuns(3)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("ListRuns(3) returned %d runs, want 3", len(runs))
	}
	if runs[0].RunID != "run-e" {
		t.Errorf("first run = %s, want run-e", runs[0].RunID)
	}
}

func TestListRuns_Empty(t *testing.T) {
	db := setupTestDB(t)

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("ListRuns() on empty journal returned %d runs", len(runs))
	}
}
