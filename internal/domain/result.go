package domain

import "time"

// CaseResult represents the result of running one expanded case
type CaseResult struct {
	Name       string        // Case name, method[index]
	Method     string        // Method name
	SetIndex   int           // Index of the parameter set in its fixture
	Source     string        // Fixture path, empty for in-process suites
	Parameters string        // Rendered parameter set
	Outcome    Outcome       // Passed, failed or errored
	Messages   []string      // Assertion failure or error messages
	Locations  []string      // file:line of each assertion failure
	Duration   time.Duration // Time taken to run
}

// Success reports whether the case passed.
func (r CaseResult) Success() bool {
	return r.Outcome == OutcomePassed
}

// TestResultsMeta contains metadata about a run
type TestResultsMeta struct {
	RunID           string  `json:"run_id"`
	TotalFixtures   int     `json:"total_fixtures"`
	TotalCases      int     `json:"total_cases"`
	PassedCases     int     `json:"passed_cases"`
	FailedCases     int     `json:"failed_cases"`
	ErroredCases    int     `json:"errored_cases"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for run results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
