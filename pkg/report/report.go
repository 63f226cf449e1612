// Package report renders the markdown resources document from the full
// set of categorized captures. The document is regenerated wholesale on
// every run, never patched incrementally.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/averros/tidydesk/models"
	"github.com/averros/tidydesk/pkg/storage"
)

// Generator renders and writes the capture report.
type Generator struct {
	storage *storage.Storage
	// now is injectable so tests can pin the generated-at header.
	now func() time.Time
}

// NewGenerator builds a Generator writing through the shared storage layer.
func NewGenerator(s *storage.Storage) *Generator {
	return &Generator{storage: s, now: time.Now}
}

// Render produces the full markdown document. Output is deterministic for
// a given capture set (and clock): categories are sorted by name, entries
// by date then file name.
func (g *Generator) Render(captures []models.Capture, ocrAvailable bool) string {
	grouped := make(map[string][]models.Capture)
	for _, c := range captures {
		grouped[c.Category] = append(grouped[c.Category], c)
	}

	categories := make([]string, 0, len(grouped))
	for name := range grouped {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, name := range categories {
		entries := grouped[name]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Date != entries[j].Date {
				return entries[i].Date < entries[j].Date
			}
			return entries[i].FileName < entries[j].FileName
		})
	}

	ocrState := "no"
	if ocrAvailable {
		ocrState = "yes"
	}

	var sb strings.Builder
	sb.WriteString("# Web Captures - Organized Resources\n\n")
	fmt.Fprintf(&sb, "**Generated:** %s\n", g.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Total captures:** %d\n", len(captures))
	fmt.Fprintf(&sb, "**Categories:** %d\n", len(categories))
	fmt.Fprintf(&sb, "**OCR enabled:** %s\n\n", ocrState)
	sb.WriteString("---\n\n")

	sb.WriteString("## Category Index\n\n")
	for _, name := range categories {
		fmt.Fprintf(&sb, "- [%s](#%s) (%d captures)\n", name, anchor(name), len(grouped[name]))
	}
	sb.WriteString("\n---\n\n")

	for _, name := range categories {
		entries := grouped[name]
		fmt.Fprintf(&sb, "## %s\n\n", name)
		fmt.Fprintf(&sb, "*%d capture(s) in this category*\n\n", len(entries))

		for i, c := range entries {
			fmt.Fprintf(&sb, "### %d. %s\n\n", i+1, c.Description)
			fmt.Fprintf(&sb, "**Date:** %s | **File:** `%s`", c.Date, c.FileName)
			if c.Language != "" {
				fmt.Fprintf(&sb, " | **Language:** %s", c.Language)
			}
			sb.WriteString("\n\n")

			if len(c.URLs) > 0 {
				fmt.Fprintf(&sb, "**URLs (%d):**\n", len(c.URLs))
				for _, u := range c.URLs {
					fmt.Fprintf(&sb, "- %s\n", u)
				}
				sb.WriteString("\n")
			}

			if c.HasText() {
				fmt.Fprintf(&sb, "**Extracted text:**\n```\n%s\n```\n\n", c.Text)
			}

			sb.WriteString("---\n\n")
		}
	}

	return sb.String()
}

// Write renders the document and saves it atomically to path.
func (g *Generator) Write(path string, captures []models.Capture, ocrAvailable bool) error {
	content := g.Render(captures, ocrAvailable)
	if err := g.storage.SaveFileAtomic(path, []byte(content)); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}

// anchor converts a category name to a GitHub-style heading anchor.
func anchor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
