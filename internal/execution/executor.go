package execution

import (
	"context"
	"time"

	"casex/internal/domain"
	"casex/internal/suite"
)

// Executor executes cases and returns results in case order
type Executor interface {
	Execute(ctx context.Context, cases []*suite.Case) ([]domain.CaseResult, time.Duration, error)
}

// Progress receives counts as cases complete
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}
