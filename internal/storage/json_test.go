package storage

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casex/internal/config"
	"casex/internal/domain"
)

func sampleResults() []domain.CaseResult {
	return []domain.CaseResult{
		{Name: "A[0]", Method: "A", Source: "a.cases.yaml", Outcome: domain.OutcomePassed},
		{Name: "A[1]", Method: "A", SetIndex: 1, Source: "a.cases.yaml", Outcome: domain.OutcomeFailed},
		{Name: "B[0]", Method: "B", Source: "b.cases.yaml", Outcome: domain.OutcomeErrored},
		{Name: "B[1]", Method: "B", SetIndex: 1, Source: "b.cases.yaml", Outcome: domain.OutcomePassed},
	}
}

func sampleFailures() []domain.TestFailure {
	return []domain.TestFailure{
		{TestName: "A[1]", FilePath: "a.cases.yaml", Method: "A", SetIndex: 1, Outcome: domain.OutcomeFailed,
			Message: `expected "x", got "y"`, StackTrace: []string{"a.go:10"}, File: "a.go", Line: 10},
		{TestName: "B[0]", FilePath: "b.cases.yaml", Method: "B", Outcome: domain.OutcomeErrored,
			Message: `missing parameter field "expected"`, StackTrace: []string{}},
	}
}

func TestBuildOutput(t *testing.T) {
	out := BuildOutput(sampleResults(), sampleFailures(), 1500*time.Millisecond, 4)

	_, err := uuid.Parse(out.Meta.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Meta.TotalFixtures)
	assert.Equal(t, 4, out.Meta.TotalCases)
	assert.Equal(t, 2, out.Meta.PassedCases)
	assert.Equal(t, 1, out.Meta.FailedCases)
	assert.Equal(t, 1, out.Meta.ErroredCases)
	assert.Equal(t, "1.5s", out.Meta.Duration)
	assert.Equal(t, 1.5, out.Meta.DurationSeconds)
	assert.Equal(t, 4, out.Meta.Workers)
	assert.Len(t, out.Details, 2)
}

func TestBuildOutput_NoFailuresIsEmptyList(t *testing.T) {
	out := BuildOutput(nil, nil, 0, 1)
	assert.NotNil(t, out.Details)
	assert.Empty(t, out.Details)
	assert.Zero(t, out.Meta.TotalFixtures)
}

func TestJSONStorage_RoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	store := NewJSONStorage(cfg)

	require.NoError(t, store.Save(sampleResults(), sampleFailures(), time.Second, 2))

	_, err := os.Stat(cfg.GetOutputPath())
	require.NoError(t, err)

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, out.Meta.TotalCases)
	assert.Equal(t, sampleFailures(), out.Details)

	out.Details[0].Resolved = true
	require.NoError(t, store.SaveOutput(out))

	again, err := store.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[0].Resolved)
	assert.Equal(t, out.Meta.RunID, again.Meta.RunID)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()

	_, err := NewJSONStorage(cfg).Load()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFailedKeys(t *testing.T) {
	out := &domain.TestResultsOutput{Details: sampleFailures()}
	out.Details[1].Resolved = true

	keys := FailedKeys(out)
	assert.Equal(t, map[string]bool{"a.cases.yaml::A[1]": true}, keys)
	assert.Empty(t, FailedKeys(nil))
}

func TestNew_SelectsStore(t *testing.T) {
	cfg := config.New()
	s, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &JSONStorage{}, s)

	cfg.Store = "redis"
	_, err = New(cfg)
	assert.Error(t, err)

	cfg.Store = config.StoreMySQL
	cfg.Database.Name = "bad;name"
	_, err = New(cfg)
	assert.ErrorContains(t, err, "invalid database name")
}
