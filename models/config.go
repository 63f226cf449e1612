// Package models defines data structures for configuration and capture records.
package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration for all tidydesk commands.
// Values come from an optional config.yaml; missing fields fall back to
// the defaults the original in-source constants used.
type Config struct {
	Captures CapturesConfig `yaml:"captures"`
	Organize OrganizeConfig `yaml:"organize"`
}

// CapturesConfig configures the capture processor and its watcher.
type CapturesConfig struct {
	InputDir   string `yaml:"input_dir"`
	OutputFile string `yaml:"output_file"`
	CacheFile  string `yaml:"cache_file"`
	DBFile     string `yaml:"db_file"`
	LockFile   string `yaml:"lock_file"`

	// TesseractPath overrides the tesseract binary looked up on PATH.
	TesseractPath string `yaml:"tesseract_path"`
	// OCRLanguages is passed to tesseract -l (e.g. "spa+eng").
	OCRLanguages string `yaml:"ocr_languages"`

	// SettleDelay is the pause after a file event before processing,
	// so an in-progress copy can finish.
	SettleDelay time.Duration `yaml:"settle_delay"`
	// DebounceWindow coalesces triggers arriving shortly after a run.
	DebounceWindow time.Duration `yaml:"debounce_window"`
	// PollInterval is the scan interval in polling mode.
	PollInterval time.Duration `yaml:"poll_interval"`

	// ExtraCategories appends keyword categories to the built-in table.
	ExtraCategories []KeywordCategory `yaml:"extra_categories"`
}

// OrganizeConfig configures the downloads organizer.
type OrganizeConfig struct {
	SourceDir string `yaml:"source_dir"`
}

// KeywordCategory is a user-defined keyword bucket merged into the
// built-in category table.
type KeywordCategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Captures: CapturesConfig{
			InputDir:       "input",
			OutputFile:     "resources.md",
			CacheFile:      ".processed_files.json",
			DBFile:         "tidydesk.db",
			LockFile:       ".tidydesk.lock",
			OCRLanguages:   "spa+eng",
			SettleDelay:    1 * time.Second,
			DebounceWindow: 2 * time.Second,
			PollInterval:   5 * time.Second,
		},
		Organize: OrganizeConfig{
			SourceDir: filepath.Join(home, "Downloads"),
		},
	}
}

// LoadConfig reads a YAML config file and merges it over the defaults.
// A missing file is not an error; the defaults are returned as-is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Re-apply defaults for fields the file zeroed out.
	def := DefaultConfig()
	if cfg.Captures.InputDir == "" {
		cfg.Captures.InputDir = def.Captures.InputDir
	}
	if cfg.Captures.OutputFile == "" {
		cfg.Captures.OutputFile = def.Captures.OutputFile
	}
	if cfg.Captures.CacheFile == "" {
		cfg.Captures.CacheFile = def.Captures.CacheFile
	}
	if cfg.Captures.DBFile == "" {
		cfg.Captures.DBFile = def.Captures.DBFile
	}
	if cfg.Captures.LockFile == "" {
		cfg.Captures.LockFile = def.Captures.LockFile
	}
	if cfg.Captures.OCRLanguages == "" {
		cfg.Captures.OCRLanguages = def.Captures.OCRLanguages
	}
	if cfg.Captures.SettleDelay <= 0 {
		cfg.Captures.SettleDelay = def.Captures.SettleDelay
	}
	if cfg.Captures.DebounceWindow <= 0 {
		cfg.Captures.DebounceWindow = def.Captures.DebounceWindow
	}
	if cfg.Captures.PollInterval <= 0 {
		cfg.Captures.PollInterval = def.Captures.PollInterval
	}
	if cfg.Organize.SourceDir == "" {
		cfg.Organize.SourceDir = def.Organize.SourceDir
	}

	return cfg, nil
}
