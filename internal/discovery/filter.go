package discovery

import (
	"path/filepath"
	"strings"

	"casex/internal/suite"
)

// Filter narrows fixture files and cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps fixture paths whose base name matches pattern.
// Supports patterns like "*concat.cases.yaml" or "*concat*"
func (f *Filter) FilterByName(fixtures []string, pattern string) []string {
	if pattern == "" {
		return fixtures
	}

	var filtered []string
	for _, fixture := range fixtures {
		if Match(filepath.Base(fixture), pattern) {
			filtered = append(filtered, fixture)
		}
	}
	return filtered
}

// FilterCases keeps cases whose name (method[index]) matches pattern, in order
func (f *Filter) FilterCases(cases []*suite.Case, pattern string) []*suite.Case {
	if pattern == "" {
		return cases
	}

	var filtered []*suite.Case
	for _, c := range cases {
		if Match(c.Name(), pattern) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// Match reports whether name matches pattern. A pattern with * or ? is tried
// with filepath.Match first, then as an ordered list of substrings split on
// *. A pattern without wildcards matches as a substring.
func Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	// "*User*Test" style: every non-empty part must appear, in order
	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		i := strings.Index(rest, part)
		if i < 0 {
			return false
		}
		rest = rest[i+len(part):]
		found = true
	}
	return found
}
