package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casex/internal/config"
	"casex/internal/discovery"
	"casex/internal/domain"
)

func init() {
	color.NoColor = true
}

type memoryStore struct {
	saved *domain.TestResultsOutput
	saves int
	err   error
}

func (m *memoryStore) Save([]domain.CaseResult, []domain.TestFailure, time.Duration, int) error {
	return nil
}

func (m *memoryStore) Load() (*domain.TestResultsOutput, error) { return m.saved, nil }

func (m *memoryStore) SaveOutput(output *domain.TestResultsOutput) error {
	m.saves++
	m.saved = output
	return m.err
}

func failures() []domain.TestFailure {
	return []domain.TestFailure{
		{TestName: "GeneratedString[1]", FilePath: "testdata/b.cases.yaml", Method: "GeneratedString", SetIndex: 1,
			Outcome: domain.OutcomeFailed, Message: `expected "x", got "y"`, File: "concat.go", Line: 31,
			StackTrace: []string{"concat.go:31"}},
		{TestName: "GeneratedString[0]", FilePath: "testdata/a.cases.yaml", Method: "GeneratedString",
			Outcome: domain.OutcomeErrored, Message: `missing parameter field "expected"`},
		{TestName: "GeneratedString[3]", FilePath: "testdata/b.cases.yaml", Method: "GeneratedString", SetIndex: 3,
			Outcome: domain.OutcomeFailed},
	}
}

func TestFailureTree(t *testing.T) {
	got := failureTree(failures())
	want := []string{
		"├── testdata/a.cases.yaml",
		"│   └── GeneratedString[0] (errored)",
		"└── testdata/b.cases.yaml",
		"    ├── GeneratedString[1]",
		"    └── GeneratedString[3]",
	}
	assert.Equal(t, want, got)
	assert.Nil(t, failureTree(nil))
}

func TestPrintMetaStats(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(config.New(), discovery.NewParser())
	f.SetOutput(&buf)

	f.PrintMetaStats(&domain.TestResultsOutput{
		Meta:    domain.TestResultsMeta{RunID: "run-1", TotalCases: 10, PassedCases: 8, FailedCases: 1, ErroredCases: 1},
		Details: failures()[:2],
	})
	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "✗ 1 case(s) failed, 1 errored")
	assert.Contains(t, out, "GeneratedString[0] (errored)")

	buf.Reset()
	f.PrintMetaStats(&domain.TestResultsOutput{Meta: domain.TestResultsMeta{TotalCases: 10, PassedCases: 10}})
	assert.Contains(t, buf.String(), "✓ All cases passed!")
}

func TestPrintTestList(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = "../.."
	f := NewFormatter(cfg, discovery.NewParser())
	var buf bytes.Buffer
	f.SetOutput(&buf)

	fixture := "../../testdata/concat.cases.yaml"
	f.PrintTestList([]string{fixture}, true, map[string]bool{
		"testdata/concat.cases.yaml::GeneratedString[2]": true,
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines, "└── testdata/concat.cases.yaml [F]")
	assert.Contains(t, lines, "    ├── GeneratedString[2] [F]")
	assert.Contains(t, lines, "    ├── GeneratedStringDoesSomethingElse[2]")
	assert.Contains(t, lines, "    └── GeneratedStringDoesSomethingElse[4]")

	buf.Reset()
	f.PrintTestList([]string{fixture}, false, nil)
	assert.Contains(t, buf.String(), "Found 1 fixture file(s):")
	assert.NotContains(t, buf.String(), "GeneratedString[")
}

func TestCountTestCases(t *testing.T) {
	f := NewFormatter(config.New(), discovery.NewParser())
	n, err := f.CountTestCases([]string{"../../testdata/concat.cases.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = f.CountTestCases([]string{"missing.cases.yaml"})
	assert.Error(t, err)
}

func TestFormatFailureDetails(t *testing.T) {
	fs := failures()

	details := formatFailureDetails(fs[0])
	assert.Contains(t, details, "✗ Failed")
	assert.Contains(t, details, "Location: concat.go:31")
	assert.Contains(t, details, `expected "x", got "y"`)

	details = formatFailureDetails(fs[1])
	assert.Contains(t, details, "! Errored")
	assert.NotContains(t, details, "Location:")

	many := fs[0]
	many.StackTrace = make([]string, maxTraceLines+3)
	assert.Contains(t, formatFailureDetails(many), "... and 3 more")
}

func TestFailureScreen_Toggle(t *testing.T) {
	store := &memoryStore{}
	s := &failureScreen{results: &domain.TestResultsOutput{Details: failures()}, store: store}

	assert.Equal(t, 3, s.unresolved())
	s.toggle(1)
	assert.True(t, s.results.Details[1].Resolved)
	assert.Equal(t, 2, s.unresolved())
	assert.Equal(t, 1, store.saves)
	assert.True(t, store.saved.Details[1].Resolved)

	s.toggle(1)
	assert.False(t, s.results.Details[1].Resolved)

	s.toggle(99)
	assert.Equal(t, 2, store.saves)

	store.err = errors.New("disk full")
	s.toggle(0)
	assert.EqualError(t, s.saveErr, "disk full")
}

func TestListItemText(t *testing.T) {
	f := failures()[0]
	assert.True(t, strings.HasPrefix(listItemText(f, 0), "[yellow]1."))
	f.Resolved = true
	assert.True(t, strings.HasPrefix(listItemText(f, 4), "[gray]✓ [yellow]5."))
}
