package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casex/internal/domain"
)

var _ Parser = (*ResultParser)(nil)

func TestResultParser_ParseTestCounts(t *testing.T) {
	p := NewResultParser()

	tests := []struct {
		outcome    domain.Outcome
		wantPassed int
		wantFailed int
	}{
		{domain.OutcomePassed, 1, 0},
		{domain.OutcomeFailed, 0, 1},
		{domain.OutcomeErrored, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			passed, failed := p.ParseTestCounts(domain.CaseResult{Outcome: tt.outcome})
			assert.Equal(t, tt.wantPassed, passed)
			assert.Equal(t, tt.wantFailed, failed)
		})
	}
}

func TestResultParser_ParseFailure(t *testing.T) {
	p := NewResultParser()

	assert.Nil(t, p.ParseFailure(domain.CaseResult{Name: "M[0]", Outcome: domain.OutcomePassed}))

	failures := p.ParseFailure(domain.CaseResult{
		Name:       "GeneratedString[2]",
		Method:     "GeneratedString",
		SetIndex:   2,
		Source:     "testdata/concat.cases.yaml",
		Parameters: `{parts: ["Brian", "Coyner"], expected: "Brian"}`,
		Outcome:    domain.OutcomeFailed,
		Messages:   []string{`expected "Brian", got "BrianCoyner"`, "second"},
		Locations:  []string{"concat.go:31", "concat.go:32"},
	})
	require.Len(t, failures, 1)

	f := failures[0]
	assert.Equal(t, "GeneratedString[2]", f.TestName)
	assert.Equal(t, "testdata/concat.cases.yaml", f.FilePath)
	assert.Equal(t, "GeneratedString", f.Method)
	assert.Equal(t, 2, f.SetIndex)
	assert.Equal(t, domain.OutcomeFailed, f.Outcome)
	assert.Equal(t, `{parts: ["Brian", "Coyner"], expected: "Brian"}`, f.ErrorDetails)
	assert.Equal(t, "expected \"Brian\", got \"BrianCoyner\"\nsecond", f.Message)
	assert.Equal(t, []string{"concat.go:31", "concat.go:32"}, f.StackTrace)
	assert.Equal(t, "concat.go", f.File)
	assert.Equal(t, 31, f.Line)
	assert.Equal(t, "testdata/concat.cases.yaml::GeneratedString[2]", f.Key())
}

func TestResultParser_ParseFailure_Errored(t *testing.T) {
	failures := NewResultParser().ParseFailure(domain.CaseResult{
		Name:     "GeneratedString[0]",
		Outcome:  domain.OutcomeErrored,
		Messages: []string{`missing parameter field "expected"`},
	})
	require.Len(t, failures, 1)
	assert.Equal(t, domain.OutcomeErrored, failures[0].Outcome)
	assert.Empty(t, failures[0].File)
	assert.Zero(t, failures[0].Line)
	assert.Empty(t, failures[0].StackTrace)
}

func TestResultParser_ParseFailures(t *testing.T) {
	results := []domain.CaseResult{
		{Name: "A[0]", Outcome: domain.OutcomePassed},
		{Name: "A[1]", Outcome: domain.OutcomeFailed},
		{Name: "B[0]", Outcome: domain.OutcomeErrored},
	}
	failures := NewResultParser().ParseFailures(results)
	require.Len(t, failures, 2)
	assert.Equal(t, "A[1]", failures[0].TestName)
	assert.Equal(t, "B[0]", failures[1].TestName)
}

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		in   string
		file string
		line int
	}{
		{"case.go:12", "case.go", 12},
		{"noline", "noline", 0},
		{"odd:name:x", "odd:name:x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			file, line := splitLocation(tt.in)
			assert.Equal(t, tt.file, file)
			assert.Equal(t, tt.line, line)
		})
	}
}
