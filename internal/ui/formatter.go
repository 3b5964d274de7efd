package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"casex/internal/config"
	"casex/internal/discovery"
	"casex/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    color.Output,
	}
}

// SetOutput redirects the formatter, mostly for tests
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

type statRow struct {
	label string
	value string
	paint func(format string, a ...interface{}) string
}

const rule = "├─────────────────────────────────┼──────────────────────────────────────┤"

// PrintMetaStats displays the statistics of a run followed by its failures
func (f *Formatter) PrintMetaStats(output *domain.TestResultsOutput) {
	meta := output.Meta
	white := color.WhiteString

	rows := []statRow{
		{"Run ID", meta.RunID, white},
		{"Fixtures", fmt.Sprint(meta.TotalFixtures), white},
		{"Total Cases", fmt.Sprint(meta.TotalCases), white},
		{"Passed Cases", fmt.Sprint(meta.PassedCases), color.GreenString},
		{"Failed Cases", fmt.Sprint(meta.FailedCases), color.RedString},
		{"Errored Cases", fmt.Sprint(meta.ErroredCases), color.RedString},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white},
		{"Workers", fmt.Sprint(meta.Workers), white},
		{"Timestamp", meta.Timestamp, white},
	}

	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔════════════════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                        Case Execution Statistics                       ║"))
	fmt.Fprintln(f.out, color.CyanString("╚════════════════════════════════════════════════════════════════════════╝"))
	fmt.Fprintln(f.out, "┌─────────────────────────────────┬──────────────────────────────────────┐")
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ %s │\n", row.label, row.paint("%-36s", row.value))
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, rule)
		}
	}
	fmt.Fprintln(f.out, "└─────────────────────────────────┴──────────────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.FailedCases == 0 && meta.ErroredCases == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ All cases passed!"))
		return
	}
	fmt.Fprintln(f.out, color.RedString("✗ %d case(s) failed, %d errored", meta.FailedCases, meta.ErroredCases))
	fmt.Fprintln(f.out)
	for _, line := range failureTree(output.Details) {
		fmt.Fprintln(f.out, line)
	}
}

// failureTree renders failures grouped by fixture, fixtures sorted by path
// and cases in recorded order.
func failureTree(failures []domain.TestFailure) []string {
	if len(failures) == 0 {
		return nil
	}

	byFixture := make(map[string][]domain.TestFailure)
	var fixtures []string
	for _, failure := range failures {
		if _, ok := byFixture[failure.FilePath]; !ok {
			fixtures = append(fixtures, failure.FilePath)
		}
		byFixture[failure.FilePath] = append(byFixture[failure.FilePath], failure)
	}
	sort.Strings(fixtures)

	var lines []string
	for i, fixture := range fixtures {
		lastFixture := i == len(fixtures)-1
		name := fixture
		if name == "" {
			name = "(in-process)"
		}
		lines = append(lines, color.YellowString("%s %s", branch(lastFixture), name))

		cases := byFixture[fixture]
		for j, failure := range cases {
			label := failure.TestName
			if failure.Outcome == domain.OutcomeErrored {
				label += " (errored)"
			}
			lines = append(lines, indent(lastFixture)+color.RedString("%s %s", branch(j == len(cases)-1), label))
		}
	}
	return lines
}

func branch(last bool) string {
	if last {
		return "└──"
	}
	return "├──"
}

func indent(lastParent bool) string {
	if lastParent {
		return "    "
	}
	return "│   "
}

// CountTestCases returns the total number of cases across the given fixture files.
func (f *Formatter) CountTestCases(fixtures []string) (int, error) {
	var total int
	for _, fixture := range fixtures {
		cases, err := f.parser.FindTestCases(fixture)
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}

// PrintTestList prints fixture files, optionally with their expanded cases.
// failedKeys is optional; fixtures and cases that failed in the last run are
// marked with [F] in red.
func (f *Formatter) PrintTestList(fixtures []string, showTestCases bool, failedKeys map[string]bool) {
	failedFixtures := make(map[string]bool)
	for key := range failedKeys {
		if i := strings.LastIndex(key, "::"); i >= 0 {
			failedFixtures[key[:i]] = true
		}
	}
	marker := " " + color.RedString("[F]")

	if showTestCases {
		fmt.Fprintln(f.out, color.GreenString("Found %d fixture file(s) with cases:", len(fixtures)))
	} else {
		fmt.Fprintln(f.out, color.GreenString("Found %d fixture file(s):", len(fixtures)))
	}
	fmt.Fprintln(f.out)

	for i, fixture := range fixtures {
		rel := discovery.RelPath(f.config.ProjectPath, fixture)
		lastFixture := i == len(fixtures)-1

		failMarker := ""
		if failedFixtures[rel] {
			failMarker = marker
		}
		fmt.Fprintf(f.out, "%s%s\n", color.CyanString("%s %s", branch(lastFixture), rel), failMarker)

		if !showTestCases {
			continue
		}

		cases, err := f.parser.FindTestCases(fixture)
		if err != nil {
			fmt.Fprintf(f.out, "%s%s\n", indent(lastFixture), color.RedString("└── error: %v", err))
			continue
		}
		if len(cases) == 0 {
			fmt.Fprintf(f.out, "%s%s\n", indent(lastFixture), color.RedString("└── (no cases)"))
		}
		for j, name := range cases {
			caseMarker := ""
			if failedKeys[rel+"::"+name] {
				caseMarker = marker
			}
			fmt.Fprintf(f.out, "%s%s %s%s\n", indent(lastFixture), branch(j == len(cases)-1), color.YellowString(name), caseMarker)
		}

		if !lastFixture {
			fmt.Fprintln(f.out)
		}
	}
}

// PrintError prints err to stderr in red
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
}
