// Package cache persists which capture files have already been analyzed.
//
// The store is a flat JSON table keyed by original file name. A record is
// only honored while its stored modification time matches the file's
// current one; any change to the file forces reprocessing.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Record holds everything remembered about one processed file.
type Record struct {
	ModTimeUnixNano int64    `json:"mtime"`
	ProcessedAt     string   `json:"processed_date"`
	Path            string   `json:"path"`
	Text            string   `json:"text"`
	WordCount       int      `json:"word_count"`
	URLs            []string `json:"urls"`
	Language        string   `json:"language,omitempty"`
	Category        string   `json:"category"`
}

// Store is a processed-file cache backed by a single JSON file.
// It is not safe for concurrent use; runs are serialized above this layer.
type Store struct {
	path    string
	records map[string]Record
}

// NewStore creates a Store for the given file path without touching disk.
func NewStore(path string) *Store {
	return &Store{
		path:    path,
		records: make(map[string]Record),
	}
}

// Load reads the whole table from disk. A missing or corrupt store is
// treated as empty rather than fatal: every file will simply be
// reprocessed.
func (s *Store) Load() error {
	s.records = make(map[string]Record)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return nil // unreadable store counts as empty
	}

	var records map[string]Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil // corrupt store counts as empty
	}

	s.records = records
	return nil
}

// Save writes the whole table back to disk.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// IsProcessed reports whether name has a record whose stored modification
// time equals modTime.
func (s *Store) IsProcessed(name string, modTime time.Time) bool {
	rec, ok := s.records[name]
	return ok && rec.ModTimeUnixNano == modTime.UnixNano()
}

// Get returns the record for name, if present.
func (s *Store) Get(name string) (Record, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

// Mark upserts the record for name with the file's current modification
// time, a fresh processed-at timestamp, and the derived word count.
func (s *Store) Mark(name string, modTime time.Time, rec Record) {
	rec.ModTimeUnixNano = modTime.UnixNano()
	rec.ProcessedAt = time.Now().Format("2006-01-02 15:04:05")
	rec.WordCount = len(strings.Fields(rec.Text))
	if rec.URLs == nil {
		rec.URLs = []string{}
	}
	s.records[name] = rec
}

// Len returns the number of cached records.
func (s *Store) Len() int {
	return len(s.records)
}

// Clear drops all records and removes the store file.
func (s *Store) Clear() error {
	s.records = make(map[string]Record)
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}
