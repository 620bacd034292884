package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/detector"
)

func TestRunDetect_Text(t *testing.T) {
	path := writeFile(t, t.TempDir(), "precincts.txt", precinctReport())

	stdout, _, err := execute(t, NewDetectCommand(), path)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	checks := []string{
		"Lines sampled: 3",
		"Widest line: 25",
		"Boundary mode: leading_edge",
		"Breaks: 0,12,20",
		"Adair",
		"67%",
		"--- Configuration snippet",
		"name: precincts",
		"mode: fixed",
		"width: 12",
	}
	for _, check := range checks {
		if !strings.Contains(stdout, check) {
			t.Errorf("Output missing %q:\n%s", check, stdout)
		}
	}
}

func TestRunDetect_NoColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "blank.txt", "\n\n")

	stdout, _, err := execute(t, NewDetectCommand(), path)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if !strings.Contains(stdout, "No columns detected.") {
		t.Errorf("Output = %s", stdout)
	}

	configPath := filepath.Join(t.TempDir(), "colsplit.yaml")
	if _, _, err := execute(t, NewDetectCommand(), "-w", configPath, path); err == nil {
		t.Error("Expected error writing config with no columns")
	}
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		t.Error("Config file should not be created")
	}
}

func TestRunDetect_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "precincts.txt", precinctReport())

	stdout, _, err := execute(t, NewDetectCommand(), "-o", "json", "--inferred", "--name", "county", path)
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(out.Columns) != 3 || out.Columns[1].Filled != 2 {
		t.Errorf("Columns = %+v", out.Columns)
	}
	if out.Layout == nil || out.Layout.Name != "county" || out.Layout.Mode != config.ModeInferred {
		t.Errorf("Layout = %+v", out.Layout)
	}
}

func TestRunDetect_MissingFile(t *testing.T) {
	if _, _, err := execute(t, NewDetectCommand(), "/nonexistent/report.txt"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteStarterConfig_Success(t *testing.T) {
	dir := t.TempDir()
	reportPath := writeFile(t, dir, "precincts.txt", precinctReport())
	configPath := filepath.Join(dir, "colsplit.yaml")

	if _, _, err := execute(t, NewDetectCommand(), "--write-config", configPath, reportPath); err != nil {
		t.Fatalf("detect failed: %v", err)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if !strings.HasPrefix(string(content), "# colsplit configuration\n") {
		t.Errorf("Config missing header:\n%s", content)
	}

	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		t.Fatalf("Generated config does not load: %v", err)
	}
	layout := cfg.Layout("precincts")
	if layout == nil || layout.FixedLayout() == nil {
		t.Fatalf("Layouts = %+v", cfg.Layouts)
	}
	rec, err := layout.FixedLayout().Slice(strings.Split(precinctReport(), "\n")[2])
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if rec.Get("col2") != "1,077" {
		t.Errorf("col2 = %q, want 1,077", rec.Get("col2"))
	}
}

func TestWriteStarterConfig_FileExists(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "existing.yaml", "existing content")

	result := detector.New().DetectFromLines(strings.Split(strings.TrimSpace(precinctReport()), "\n"))
	layout, err := result.FixedLayout("precincts")
	if err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	err = writeStarterConfig(&out, layout, "/var/reports/precincts.txt", configPath)
	if err == nil {
		t.Error("Expected error when file exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}

	content, _ := os.ReadFile(configPath)
	if string(content) != "existing content" {
		t.Error("Original file was modified")
	}
}

func TestGenerateStarterConfig_Inferred(t *testing.T) {
	result := detector.New().DetectFromLines([]string{"a  b", "c  d"})
	layout := result.InferredLayout("pairs")

	content, err := generateStarterConfig(layout, "/var/reports/pairs.txt")
	if err != nil {
		t.Fatalf("generateStarterConfig() error = %v", err)
	}

	checks := []string{
		"# Detected from: /var/reports/pairs.txt",
		"sources:",
		"- /var/reports/pairs.txt",
		"name: pairs",
		"mode: inferred",
		"min_separator_run: 2",
		"boundary_mode: leading_edge",
	}
	for _, check := range checks {
		if !strings.Contains(string(content), check) {
			t.Errorf("Config missing %q:\n%s", check, content)
		}
	}
}

func TestLayoutName(t *testing.T) {
	tests := map[string]string{
		"/var/reports/precincts.txt": "precincts",
		"county.2024.dat":            "county.2024",
		"README":                     "README",
	}
	for path, want := range tests {
		if got := layoutName(path); got != want {
			t.Errorf("layoutName(%q) = %q, want %q", path, got, want)
		}
	}
}
