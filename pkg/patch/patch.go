// Package patch applies exact-text replacements to source files, driven
// by a YAML rule file.
package patch

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/averros/tidydesk/pkg/storage"
)

// Rule is one replacement: the old block must appear verbatim in the
// target file.
type Rule struct {
	File string `yaml:"file"`
	Old  string `yaml:"old"`
	New  string `yaml:"new"`
}

// RuleSet is the top-level structure of a patch rule file.
type RuleSet struct {
	Patches []Rule `yaml:"patches"`
}

// Result reports the outcome of applying one rule.
type Result struct {
	File     string
	Applied  bool
	Replaced int
	Err      error
}

// LoadRules parses a YAML rule file.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if len(rules.Patches) == 0 {
		return nil, fmt.Errorf("no patches defined in %s", path)
	}
	for i, r := range rules.Patches {
		if r.File == "" || r.Old == "" {
			return nil, fmt.Errorf("patch %d is missing file or old text", i+1)
		}
	}
	return &rules, nil
}

// Patcher applies rules through the shared storage layer.
type Patcher struct {
	storage *storage.Storage
}

// NewPatcher builds a Patcher.
func NewPatcher(s *storage.Storage) *Patcher {
	return &Patcher{storage: s}
}

// Apply performs one replacement. When the old block is absent the file
// is left untouched and the result reports Applied=false without error,
// so a rerun over already-patched files is harmless.
func (p *Patcher) Apply(rule Rule) Result {
	res := Result{File: rule.File}

	data, err := p.storage.ReadFile(rule.File)
	if err != nil {
		res.Err = err
		return res
	}

	content := string(data)
	count := strings.Count(content, rule.Old)
	if count == 0 {
		return res
	}

	updated := strings.ReplaceAll(content, rule.Old, rule.New)
	if err := p.storage.SaveFileAtomic(rule.File, []byte(updated)); err != nil {
		res.Err = err
		return res
	}

	res.Applied = true
	res.Replaced = count
	return res
}

// ApplyAll runs every rule, collecting per-rule results. Failures do not
// stop the remaining rules.
func (p *Patcher) ApplyAll(rules *RuleSet) []Result {
	results := make([]Result, 0, len(rules.Patches))
	for _, rule := range rules.Patches {
		results = append(results, p.Apply(rule))
	}
	return results
}
