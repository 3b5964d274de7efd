package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanner_Scan(t *testing.T) {
	// Create a temporary directory structure for testing
	tmpDir := t.TempDir()

	// Create fixture files
	files := []string{
		"testdata/unit/concat.cases.yaml",
		"testdata/unit/join.cases.yml",
		"testdata/integration/strings.cases.yaml",
		"vendor/some/lib.cases.yaml",
		"_scratch/ignored.cases.yaml",
		".git/ignored.cases.yaml",
		"not_a_fixture.yaml",
		"concat_test.go",
	}
	for _, file := range files {
		fullPath := filepath.Join(tmpDir, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte("catalog: concat\n"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}

	scanner := NewScanner([]string{"vendor", "node_modules"})

	t.Run("scans fixture files correctly", func(t *testing.T) {
		results, err := scanner.Scan(tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Should find 3 fixtures, not the ones in vendor, _scratch or .git
		if len(results) != 3 {
			t.Fatalf("expected 3 fixture files, got %d: %v", len(results), results)
		}

		// WalkDir visits in lexical order
		want := filepath.Join(tmpDir, "testdata/integration/strings.cases.yaml")
		if results[0] != want {
			t.Errorf("expected first result %s, got %s", want, results[0])
		}
	})

	t.Run("scans a root that starts with an underscore", func(t *testing.T) {
		results, err := scanner.Scan(filepath.Join(tmpDir, "_scratch"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected 1 fixture file, got %d", len(results))
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan(filepath.Join(tmpDir, "not_a_fixture.yaml"))
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestIsFixture(t *testing.T) {
	tests := map[string]bool{
		"concat.cases.yaml": true,
		"concat.cases.yml":  true,
		"concat.yaml":       false,
		"cases.yaml.bak":    false,
	}
	for name, want := range tests {
		if got := IsFixture(name); got != want {
			t.Errorf("IsFixture(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		project string
		path    string
		want    string
	}{
		{"/project", "/project/testdata/concat.cases.yaml", "testdata/concat.cases.yaml"},
		{".", "testdata/concat.cases.yaml", "testdata/concat.cases.yaml"},
		{".", "./testdata/../testdata/concat.cases.yaml", "testdata/concat.cases.yaml"},
		{"/project", "/elsewhere/x.cases.yaml", "/elsewhere/x.cases.yaml"},
		{"", "a/b.cases.yaml", "a/b.cases.yaml"},
	}
	for _, tt := range tests {
		if got := RelPath(tt.project, tt.path); got != tt.want {
			t.Errorf("RelPath(%q, %q) = %q, want %q", tt.project, tt.path, got, tt.want)
		}
	}
}
