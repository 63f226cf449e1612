// Package organizer buckets the files of a flat directory into category
// subfolders by extension.
package organizer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/averros/tidydesk/pkg/classifier"
)

// Move records one planned or executed file move.
type Move struct {
	Name     string
	Category string
	DestName string // differs from Name after a collision rename
	Err      error
}

// Summary is the outcome of one organize pass.
type Summary struct {
	Dir         string
	DryRun      bool
	Moves       []Move
	PerCategory map[string]int
	Processed   int
	Failed      int
	FoldersMade []string
}

// Organize classifies every regular file directly under dir and moves it
// into its category subfolder, renaming on collision. With dryRun the
// moves are only planned. Individual failures are recorded and skipped;
// only a missing or unlistable directory is an error.
func Organize(dir string, dryRun bool) (*Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	summary := &Summary{
		Dir:         dir,
		DryRun:      dryRun,
		PerCategory: make(map[string]int),
	}

	if !dryRun {
		for _, cat := range classifier.ExtensionCategories() {
			catDir := filepath.Join(dir, cat)
			if _, err := os.Stat(catDir); os.IsNotExist(err) {
				if err := os.MkdirAll(catDir, 0755); err != nil {
					return nil, fmt.Errorf("failed to create %s: %w", catDir, err)
				}
				summary.FoldersMade = append(summary.FoldersMade, cat)
			}
		}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		category := classifier.ByExtension(filepath.Ext(name))

		move := Move{Name: name, Category: category, DestName: name}
		if !dryRun {
			dest := collisionFreePath(filepath.Join(dir, category), name)
			move.DestName = filepath.Base(dest)
			if err := moveFile(filepath.Join(dir, name), dest); err != nil {
				move.Err = err
				summary.Failed++
				summary.Moves = append(summary.Moves, move)
				continue
			}
		}

		summary.PerCategory[category]++
		summary.Processed++
		summary.Moves = append(summary.Moves, move)
	}

	return summary, nil
}

// collisionFreePath returns destDir/name, appending _1, _2, ... before the
// extension until the path is unused.
func collisionFreePath(destDir, name string) string {
	dest := filepath.Join(destDir, name)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		dest = filepath.Join(destDir, fmt.Sprintf("%s_%d%s", base, i, ext))
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			return dest
		}
	}
}

// moveFile renames src to dest, falling back to copy+remove when the
// rename crosses filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}

	return os.Remove(src)
}
