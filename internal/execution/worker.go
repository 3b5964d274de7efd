package execution

import (
	"context"
	"sync"
	"time"

	"casex/internal/config"
	"casex/internal/domain"
	"casex/internal/metrics"
	"casex/internal/parser"
	"casex/internal/suite"
)

// WorkerPool manages a pool of workers for parallel case execution
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  Progress
	parser    *parser.ResultParser
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, resultParser *parser.ResultParser) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		parser:    resultParser,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs cases in parallel, honouring the configured fail-fast flag.
func (wp *WorkerPool) Execute(ctx context.Context, cases []*suite.Case) ([]domain.CaseResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, cases, wp.config.Flags.FailFast)
}

// ExecuteWithOptions runs cases with optional fail-fast (stop on first
// failed or errored case). Results are in case order whatever order the
// workers finished in; with fail-fast or a cancelled ctx they only cover the
// cases that completed.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, cases []*suite.Case, failFast bool) ([]domain.CaseResult, time.Duration, error) {
	if len(cases) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(ctx, cases)
	}
	return wp.executeFailFast(ctx, cases)
}

func (wp *WorkerPool) workerCount(total int) int {
	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > total {
		workerCount = total
	}
	return workerCount
}

// tally tracks completion counts for progress reporting.
type tally struct {
	mu        sync.Mutex
	completed int
	passed    int
	failed    int
	results   []domain.CaseResult
	done      []bool
}

func newTally(total int) *tally {
	return &tally{results: make([]domain.CaseResult, total), done: make([]bool, total)}
}

func (wp *WorkerPool) record(t *tally, index int, result domain.CaseResult) {
	t.results[index] = result
	t.done[index] = true
	t.completed++
	if wp.parser != nil {
		p, f := wp.parser.ParseTestCounts(result)
		t.passed += p
		t.failed += f
	} else if result.Success() {
		t.passed++
	} else {
		t.failed++
	}
	if wp.progress != nil {
		wp.progress.Update(t.completed, t.passed, t.failed)
	}
}

func (t *tally) collect() []domain.CaseResult {
	out := make([]domain.CaseResult, 0, t.completed)
	for i, ok := range t.done {
		if ok {
			out = append(out, t.results[i])
		}
	}
	return out
}

// executeAll gives each worker a fixed round-robin share of the cases.
func (wp *WorkerPool) executeAll(ctx context.Context, cases []*suite.Case) ([]domain.CaseResult, time.Duration, error) {
	startTime := time.Now()
	t := newTally(len(cases))
	distribution := wp.scheduler.Schedule(len(cases), wp.workerCount(len(cases)))

	var wg sync.WaitGroup
	for i, share := range distribution {
		wg.Add(1)
		go func(workerID int, share []int) {
			defer wg.Done()
			metrics.ActiveWorkers.Inc()
			defer metrics.ActiveWorkers.Dec()
			for _, index := range share {
				if ctx.Err() != nil {
					return
				}
				result := wp.runner.Run(cases[index], workerID)
				t.mu.Lock()
				wp.record(t, index, result)
				t.mu.Unlock()
			}
		}(i+1, share)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return t.collect(), time.Since(startTime), ctx.Err()
}

// executeFailFast feeds cases through a queue and stops after the first failure.
func (wp *WorkerPool) executeFailFast(parent context.Context, cases []*suite.Case) ([]domain.CaseResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	testQueue := make(chan int)
	go func() {
		defer close(testQueue)
		for i := range cases {
			select {
			case <-ctx.Done():
				return
			case testQueue <- i:
			}
		}
	}()

	startTime := time.Now()
	t := newTally(len(cases))
	var seenFailure bool

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(len(cases)); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			metrics.ActiveWorkers.Inc()
			defer metrics.ActiveWorkers.Dec()
			for index := range testQueue {
				result := wp.runner.Run(cases[index], workerID)
				t.mu.Lock()
				if !seenFailure {
					wp.record(t, index, result)
					if !result.Success() {
						seenFailure = true
						cancel()
					}
				}
				t.mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return t.collect(), time.Since(startTime), parent.Err()
}
