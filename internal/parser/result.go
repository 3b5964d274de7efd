package parser

import (
	"strconv"
	"strings"

	"casex/internal/domain"
)

// ResultParser builds failure records from case results
type ResultParser struct{}

// NewResultParser creates a new ResultParser
func NewResultParser() *ResultParser {
	return &ResultParser{}
}

// ParseTestCounts returns (1, 0) for a passed case and (0, 1) otherwise.
// Errored cases count as failed.
func (p *ResultParser) ParseTestCounts(result domain.CaseResult) (passed, failed int) {
	if result.Success() {
		return 1, 0
	}
	return 0, 1
}

// ParseFailure returns the failure record for a failed or errored case, or
// nil when the case passed.
func (p *ResultParser) ParseFailure(result domain.CaseResult) []domain.TestFailure {
	if result.Success() {
		return nil
	}

	failure := domain.TestFailure{
		TestName:     result.Name,
		FilePath:     result.Source,
		Method:       result.Method,
		SetIndex:     result.SetIndex,
		Outcome:      result.Outcome,
		ErrorDetails: result.Parameters,
		StackTrace:   append([]string{}, result.Locations...),
		Message:      strings.Join(result.Messages, "\n"),
	}
	if len(result.Locations) > 0 {
		failure.File, failure.Line = splitLocation(result.Locations[0])
	}

	return []domain.TestFailure{failure}
}

// ParseFailures collects the failure records of every unsuccessful result
func (p *ResultParser) ParseFailures(results []domain.CaseResult) []domain.TestFailure {
	var failures []domain.TestFailure
	for _, r := range results {
		failures = append(failures, p.ParseFailure(r)...)
	}
	return failures
}

func splitLocation(loc string) (file string, line int) {
	i := strings.LastIndex(loc, ":")
	if i < 0 {
		return loc, 0
	}
	n, err := strconv.Atoi(loc[i+1:])
	if err != nil {
		return loc, 0
	}
	return loc[:i], n
}
