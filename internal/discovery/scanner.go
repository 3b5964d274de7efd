package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FixtureSuffixes are the file name endings recognised as fixture files
var FixtureSuffixes = []string{".cases.yaml", ".cases.yml"}

// Scanner scans for fixture files in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all fixture files in the given root directory, in lexical order
func (s *Scanner) Scan(root string) ([]string, error) {
	var fixtures []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			// Skip hidden and underscore directories, as the go tool does
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if IsFixture(d.Name()) {
			fixtures = append(fixtures, path)
		}

		return nil
	})

	return fixtures, err
}

// IsFixture reports whether a file name looks like a fixture file
func IsFixture(name string) bool {
	for _, suffix := range FixtureSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// RelPath returns path relative to projectPath with forward slashes, or path
// itself when it lies outside the project. Results files key failures by it
// so runs started with different -t values agree.
func RelPath(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if abs, err := filepath.Abs(projectPath); err == nil {
			if absPath, err := filepath.Abs(path); err == nil {
				if rel, err := filepath.Rel(abs, absPath); err == nil && !strings.HasPrefix(rel, "..") {
					p = rel
				}
			}
		}
	}
	return filepath.ToSlash(p)
}
