package execution

import (
	"casex/internal/domain"
	"casex/internal/logger"
	"casex/internal/metrics"
	"casex/internal/suite"

	"go.uber.org/zap"
)

// Runner executes a single case
type Runner struct {
	log *logger.Logger
}

// NewRunner creates a new Runner
func NewRunner(log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{log: log}
}

// SetLogger replaces the runner's logger
func (r *Runner) SetLogger(log *logger.Logger) {
	if log != nil {
		r.log = log
	}
}

// Run executes one case on behalf of a worker and records metrics
func (r *Runner) Run(c *suite.Case, workerID int) domain.CaseResult {
	result := c.Run()

	metrics.ObserveCase(result.Method, result.Outcome.String(), result.Duration)

	log := r.log.WithCase(result.Name, result.Source)
	switch result.Outcome {
	case domain.OutcomePassed:
		log.Debug("case passed", zap.Int("worker", workerID), zap.Duration("duration", result.Duration))
	case domain.OutcomeFailed:
		log.Debug("case failed", zap.Int("worker", workerID), zap.Strings("messages", result.Messages))
	case domain.OutcomeErrored:
		log.Warn("case errored", zap.Int("worker", workerID), zap.Strings("messages", result.Messages))
	}
	return result
}
