package patch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/averros/tidydesk/pkg/storage"
)

func writeTarget(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target.go")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApply(t *testing.T) {
	path := writeTarget(t, "value := old_name\nuse(old_name)\n")
	p := NewPatcher(&storage.Storage{})

	res := p.Apply(Rule{File: path, Old: "old_name", New: "new_name"})
	if res.Err != nil {
		t.Fatalf("Apply() failed: %v", res.Err)
	}
	if !res.Applied || res.Replaced != 2 {
		t.Errorf("result = applied %v replaced %d, want true/2", res.Applied, res.Replaced)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "value := new_name\nuse(new_name)\n" {
		t.Errorf("patched content = %q", string(data))
	}
}

func TestApply_AbsentOldIsSkip(t *testing.T) {
	content := "nothing to see here\n"
	path := writeTarget(t, content)
	p := NewPatcher(&storage.Storage{})

	res := p.Apply(Rule{File: path, Old: "missing_text", New: "x"})
	if res.Err != nil {
		t.Fatalf("Apply() errored on absent old text: %v", res.Err)
	}
	if res.Applied {
		t.Error("Applied = true, want false for absent old text")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Error("file modified despite absent old text")
	}
}

func TestApply_Rerun(t *testing.T) {
	path := writeTarget(t, "count = 1\n")
	p := NewPatcher(&storage.Storage{})
	rule := Rule{File: path, Old: "count = 1", New: "count = 2"}

	if res := p.Apply(rule); !res.Applied {
		t.Fatal("first apply did nothing")
	}
	// Second pass finds nothing to replace and leaves the file alone.
	if res := p.Apply(rule); res.Applied || res.Err != nil {
		t.Errorf("rerun = applied %v err %v, want false/nil", res.Applied, res.Err)
	}
}

func TestApply_MissingFile(t *testing.T) {
	p := NewPatcher(&storage.Storage{})

	res := p.Apply(Rule{File: filepath.Join(t.TempDir(), "absent.go"), Old: "a", New: "b"})
	if res.Err == nil {
		t.Error("Apply() on missing file succeeded, want error")
	}
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.yaml")
	rules := `patches:
  - file: main.go
    old: "foo"
    new: "bar"
  - file: util.go
    old: "baz"
    new: ""
`
	if err := os.WriteFile(rulesPath, []byte(rules), 0644); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadRules(rulesPath)
	if err != nil {
		t.Fatalf("LoadRules() failed: %v", err)
	}
	if len(rs.Patches) != 2 {
		t.Fatalf("loaded %d patches, want 2", len(rs.Patches))
	}
	if rs.Patches[0].File != "main.go" || rs.Patches[0].Old != "foo" || rs.Patches[0].New != "bar" {
		t.Errorf("first rule = %+v", rs.Patches[0])
	}
}

func TestLoadRules_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty rule set", "patches: []\n"},
		{"missing file field", "patches:\n  - old: x\n    new: y\n"},
		{"missing old field", "patches:\n  - file: main.go\n    new: y\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRules(path); err == nil {
				t.Error("LoadRules() succeeded, want error")
			}
		})
	}
}

func TestApplyAll_ContinuesPastFailures(t *testing.T) {
	good := writeTarget(t, "alpha\n")
	p := NewPatcher(&storage.Storage{})

	results := p.ApplyAll(&RuleSet{Patches: []Rule{
		{File: filepath.Join(t.TempDir(), "absent.go"), Old: "x", New: "y"},
		{File: good, Old: "alpha", New: "beta"},
	}})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err == nil {
		t.Error("first rule should have failed")
	}
	if !results[1].Applied {
		t.Error("second rule should have applied despite the first failing")
	}
}
