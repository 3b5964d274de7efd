package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"casex/internal/config"
	"casex/internal/domain"
)

// Storage persists and loads run results (e.g. for the faills viewer).
type Storage interface {
	Save(results []domain.CaseResult, failures []domain.TestFailure, duration time.Duration, workers int) error
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after toggling resolved flags).
	SaveOutput(output *domain.TestResultsOutput) error
}

// New returns the store selected by cfg.Store. A MySQL store must be closed
// by the caller.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.Store {
	case config.StoreJSON, "":
		return NewJSONStorage(cfg), nil
	case config.StoreMySQL:
		s, err := OpenMySQL(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}

// BuildOutput summarises a run into the persisted output shape.
func BuildOutput(results []domain.CaseResult, failures []domain.TestFailure, duration time.Duration, workers int) *domain.TestResultsOutput {
	meta := domain.TestResultsMeta{
		RunID:           uuid.NewString(),
		TotalCases:      len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	fixtures := make(map[string]struct{})
	for _, r := range results {
		fixtures[r.Source] = struct{}{}
		switch r.Outcome {
		case domain.OutcomePassed:
			meta.PassedCases++
		case domain.OutcomeFailed:
			meta.FailedCases++
		case domain.OutcomeErrored:
			meta.ErroredCases++
		}
	}
	meta.TotalFixtures = len(fixtures)

	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return &domain.TestResultsOutput{Meta: meta, Details: failures}
}

// FailedKeys returns the Key of every unresolved failure in output.
func FailedKeys(output *domain.TestResultsOutput) map[string]bool {
	keys := make(map[string]bool)
	if output == nil {
		return keys
	}
	for _, f := range output.Details {
		if !f.Resolved {
			keys[f.Key()] = true
		}
	}
	return keys
}
