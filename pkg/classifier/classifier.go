// Package classifier assigns category labels to files and free text.
//
// Two independent classifiers live here: an extension classifier used by
// the downloads organizer, and a keyword classifier used by the capture
// processor. Both work off fixed, ordered tables so results are
// deterministic across runs.
package classifier

import (
	"strings"

	"github.com/averros/tidydesk/models"
)

// DefaultCategory is returned when no keyword category matches.
const DefaultCategory = "Uncategorized"

// OtherCategory is the fallback bucket for unknown file extensions.
const OtherCategory = "Other"

// ExtensionCategory maps a category name to the extensions it owns.
type ExtensionCategory struct {
	Name       string
	Extensions []string
}

// extensionTable is scanned in order; the first category listing the
// extension wins.
var extensionTable = []ExtensionCategory{
	{"Images", []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".ico", ".tiff", ".tif"}},
	{"Documents", []string{".pdf", ".doc", ".docx", ".txt", ".xls", ".xlsx", ".ppt", ".pptx", ".odt", ".csv", ".rtf"}},
	{"Videos", []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg"}},
	{"Audio", []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".opus"}},
	{"Archives", []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"}},
	{"Programs", []string{".exe", ".msi", ".dmg", ".apk", ".deb", ".rpm"}},
}

// ExtensionCategories returns the ordered category names, including the
// fallback bucket, for folder pre-creation.
func ExtensionCategories() []string {
	names := make([]string, 0, len(extensionTable)+1)
	for _, cat := range extensionTable {
		names = append(names, cat.Name)
	}
	return append(names, OtherCategory)
}

// ByExtension classifies a file extension (with or without leading dot)
// into a category. Unknown extensions land in OtherCategory.
func ByExtension(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, cat := range extensionTable {
		for _, e := range cat.Extensions {
			if e == ext {
				return cat.Name
			}
		}
	}
	return OtherCategory
}

// keywordTable is the built-in keyword category set. Order matters: it
// breaks score ties.
var keywordTable = []models.KeywordCategory{
	{Name: "Social Media", Keywords: []string{"twitter", "facebook", "instagram", "linkedin", "tiktok", "reddit", "social"}},
	{Name: "Development", Keywords: []string{"github", "stackoverflow", "code", "python", "javascript", "programming", "dev", "api"}},
	{Name: "News", Keywords: []string{"news", "article", "blog", "post", "medium", "noticia"}},
	{Name: "Shopping", Keywords: []string{"amazon", "ebay", "shop", "buy", "cart", "price", "compra", "tienda"}},
	{Name: "Productivity", Keywords: []string{"notion", "trello", "asana", "calendar", "task", "todo", "meeting"}},
	{Name: "Education", Keywords: []string{"course", "tutorial", "learn", "education", "udemy", "coursera", "clase"}},
	{Name: "Entertainment", Keywords: []string{"youtube", "netflix", "spotify", "music", "video", "stream"}},
	{Name: "Finance", Keywords: []string{"bank", "payment", "invoice", "finance", "money", "precio", "pago"}},
}

// Keyword scores free text against an ordered keyword table.
type Keyword struct {
	table []models.KeywordCategory
}

// NewKeyword builds a keyword classifier from the built-in table plus any
// user-defined extras, which are appended after the built-ins.
func NewKeyword(extras []models.KeywordCategory) *Keyword {
	table := make([]models.KeywordCategory, 0, len(keywordTable)+len(extras))
	table = append(table, keywordTable...)
	table = append(table, extras...)
	return &Keyword{table: table}
}

// Classify scores every category by counting keyword occurrences in the
// lower-cased text and URL list. The highest score wins; ties go to the
// category appearing first in the table. No matches or empty input return
// DefaultCategory.
func (k *Keyword) Classify(text string, urls []string) string {
	content := strings.ToLower(text)
	if len(urls) > 0 {
		content += " " + strings.ToLower(strings.Join(urls, " "))
	}
	if strings.TrimSpace(content) == "" {
		return DefaultCategory
	}

	best := DefaultCategory
	bestScore := 0
	for _, cat := range k.table {
		score := 0
		for _, kw := range cat.Keywords {
			score += strings.Count(content, strings.ToLower(kw))
		}
		if score > bestScore {
			best = cat.Name
			bestScore = score
		}
	}
	return best
}
