// Package langid tags OCR output with a language guess.
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector wraps a lingua detector restricted to the languages the OCR
// pass is configured for (Spanish and English).
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a Detector. Construction is relatively expensive (language
// models are loaded), so callers should reuse the instance across files.
func New() *Detector {
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.English, lingua.Spanish).
		Build()
	return &Detector{detector: d}
}

// Detect returns a lower-cased ISO 639-1 code ("en", "es") for the text,
// or empty when the text is too thin to classify.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
