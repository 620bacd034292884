package commands

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestRunValidate_Success(t *testing.T) {
	dir, configPath := writeRunConfig(t, 10)

	stdout, _, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	checks := []string{
		"Configuration valid!",
		"Layouts: 2",
		"1. [inferred] precincts",
		"2. [fixed] districts",
		"- " + filepath.Join(dir, "precincts.txt"),
	}
	for _, check := range checks {
		if !strings.Contains(stdout, check) {
			t.Errorf("Output missing %q:\n%s", check, stdout)
		}
	}
}

func TestRunValidate_MissingSourceWarns(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	configPath := writeFile(t, dir, "colsplit.yaml", "sources: [\""+missing+"\"]\nlayouts:\n  - {name: a, mode: inferred}\n")

	stdout, _, err := execute(t, NewValidateCommand(), configPath)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(stdout, missing+" (warning: not found)") {
		t.Errorf("Output = %s", stdout)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "invalid.yaml", "invalid: yaml: content")

	if _, _, err := execute(t, NewValidateCommand(), configPath); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestRunValidate_InvalidLayout(t *testing.T) {
	configPath := writeFile(t, t.TempDir(), "colsplit.yaml", `sources: [r.txt]
layouts:
  - name: a
    mode: fixed
`)

	_, _, err := execute(t, NewValidateCommand(), configPath)
	if err == nil || !strings.Contains(err.Error(), "fields are required") {
		t.Errorf("Expected fields error, got %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	if _, _, err := execute(t, NewValidateCommand(), "/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing file")
	}
}
