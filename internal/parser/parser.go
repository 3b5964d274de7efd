package parser

import "casex/internal/domain"

// Parser turns case results into counts and failure records
type Parser interface {
	ParseTestCounts(result domain.CaseResult) (passed, failed int)
	ParseFailure(result domain.CaseResult) []domain.TestFailure
}
