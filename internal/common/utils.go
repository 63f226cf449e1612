package common

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// imageExtensions are the capture formats the processor and watcher react
// to. Matching is case-insensitive.
var imageExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".bmp": {}, ".webp": {}, ".heic": {},
}

// IsImageFile reports whether path has a recognized image extension.
func IsImageFile(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// urlPattern matches explicit http/https URLs.
var urlPattern = regexp.MustCompile(`https?://[a-zA-Z0-9$\-_@.&+!*(),%/?#=~:;]+`)

// domainPattern matches bare domains (optionally www.-prefixed) that OCR
// often produces without a scheme.
var domainPattern = regexp.MustCompile(`(?:www\.)?[a-zA-Z0-9-]+\.[a-zA-Z]{2,}(?:/[^\s]*)?`)

// trailingChars are punctuation commonly glued onto URLs by OCR or
// copy-paste.
var trailingChars = []string{",", ".", ")", "}", "]", `"`, "'", ">", ";"}

// CleanURL strips surrounding whitespace and trailing punctuation
// artifacts from a URL candidate.
func CleanURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, ch := range trailingChars {
		cleaned = strings.TrimSuffix(cleaned, ch)
	}
	return strings.TrimSpace(cleaned)
}

// ExtractURLs pulls URLs out of free text. Explicit http(s) URLs are kept
// as-is; bare domains are promoted to https. The result is deduplicated
// and order-stable (explicit URLs first, in match order).
func ExtractURLs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var urls []string
	add := func(u string) {
		u = CleanURL(u)
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	for _, m := range urlPattern.FindAllString(text, -1) {
		add(m)
	}

	// Text with the explicit URLs removed, so a domain inside an already
	// matched URL isn't counted twice.
	stripped := urlPattern.ReplaceAllString(text, " ")
	for _, m := range domainPattern.FindAllString(stripped, -1) {
		add("https://" + strings.TrimPrefix(CleanURL(m), "https://"))
	}

	return urls
}

// filenameDatePatterns are tried in order against capture file names.
var filenameDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}[-_]\d{2}[-_]\d{2}`), // YYYY-MM-DD
	regexp.MustCompile(`\d{2}[-_]\d{2}[-_]\d{4}`), // DD-MM-YYYY
	regexp.MustCompile(`\d{8}`),                   // YYYYMMDD
}

// DateFromFilename extracts a date stamp embedded in a file name. When no
// pattern matches, the file's modification time is formatted instead.
func DateFromFilename(name string, modTime time.Time) string {
	for _, p := range filenameDatePatterns {
		if m := p.FindString(name); m != "" {
			return m
		}
	}
	return modTime.Format("2006-01-02 15:04:05")
}
