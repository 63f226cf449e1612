// Package ocr extracts text from images by driving the tesseract binary.
//
// OCR is strictly optional: when tesseract is not installed the engine
// reports itself unavailable and the capture processor degrades to
// no-text, uncategorized records instead of aborting.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// TextExtractor is the interface the capture processor consumes. The
// default implementation shells out to tesseract; tests substitute fakes.
type TextExtractor interface {
	// Available reports whether the engine can run at all.
	Available() bool
	// ExtractText OCRs one image file and returns the trimmed text.
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// Tesseract runs the tesseract CLI. Zero value is not usable; call New.
type Tesseract struct {
	binary    string
	languages string
	available bool
}

// New builds a Tesseract engine. binary may be empty to use PATH lookup;
// languages is the tesseract -l argument (e.g. "spa+eng").
func New(binary, languages string) *Tesseract {
	if binary == "" {
		binary = "tesseract"
	}
	path, err := exec.LookPath(binary)
	t := &Tesseract{
		binary:    binary,
		languages: languages,
		available: err == nil,
	}
	if err == nil {
		t.binary = path
	}
	return t
}

// Available reports whether the tesseract binary was found.
func (t *Tesseract) Available() bool {
	return t.available
}

// ExtractText OCRs the image, writing the result to stdout ("-" output
// target) so no sidecar files are produced.
func (t *Tesseract) ExtractText(ctx context.Context, imagePath string) (string, error) {
	if !t.available {
		return "", fmt.Errorf("tesseract binary not found")
	}

	args := []string{imagePath, "-"}
	if t.languages != "" {
		args = append(args, "-l", t.languages)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
