package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"casex/internal/config"
	"casex/internal/discovery"
	"casex/internal/domain"
	"casex/internal/execution"
	"casex/internal/logger"
	"casex/internal/methods"
	"casex/internal/metrics"
	"casex/internal/parser"
	"casex/internal/storage"
	"casex/internal/suite"
	"casex/internal/ui"
)

// ErrCasesFailed is returned by run when at least one case failed or errored
var ErrCasesFailed = errors.New("cases failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	suites    *discovery.Parser
	executor  *execution.WorkerPool
	parser    *parser.ResultParser
	formatter *ui.Formatter
	log       *logger.Logger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	suites *discovery.Parser,
	executor *execution.WorkerPool,
	parser *parser.ResultParser,
	formatter *ui.Formatter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		suites:    suites,
		executor:  executor,
		parser:    parser,
		formatter: formatter,
		log:       logger.Nop(),
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if addr := rc.config.MetricsAddr; addr != "" {
		srv, err := metrics.Serve(addr, rc.log)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		rc.log.Infof("serving metrics on %s", srv.Addr())
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	st, release, err := openStore(rc.config)
	if err != nil {
		return err
	}
	defer release()

	cases, fixtures, err := rc.collectCases()
	if err != nil {
		return err
	}

	if rc.config.Flags.OnlyFailed {
		last, err := st.Load()
		if err != nil {
			return fmt.Errorf("--failed needs a previous run: %w", err)
		}
		cases = rc.onlyFailed(cases, storage.FailedKeys(last))
	}

	if len(cases) == 0 {
		color.Yellow("No cases to execute")
		return nil
	}
	rc.log.Info("running cases",
		zap.Int("fixtures", fixtures),
		zap.Int("cases", len(cases)),
		zap.Int("workers", rc.config.Workers),
	)

	progressBar := ui.NewProgressBar(len(cases))
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.Execute(ctx, cases)
	if err != nil {
		rc.log.WithError(err).Errorf("run interrupted after %d of %d case(s)", len(results), len(cases))
		return fmt.Errorf("run interrupted after %d case(s): %w", len(results), err)
	}

	failures := rc.parser.ParseFailures(results)
	for i := range failures {
		failures[i].FilePath = discovery.RelPath(rc.config.ProjectPath, failures[i].FilePath)
	}

	if err := st.Save(results, failures, duration, rc.config.Workers); err != nil {
		return fmt.Errorf("failed to save case results: %w", err)
	}
	output, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to reload case results: %w", err)
	}

	rc.log.WithRun(output.Meta.RunID).Info("run finished",
		zap.Int("passed", output.Meta.PassedCases),
		zap.Int("failed", output.Meta.FailedCases),
		zap.Int("errored", output.Meta.ErroredCases),
		zap.Duration("duration", duration),
	)
	rc.formatter.PrintMetaStats(output)

	if len(failures) == 0 {
		return nil
	}
	if rc.config.Flags.OpenFaills {
		if err := ui.NewErrorViewer(st).View(output); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d of %d", ErrCasesFailed, len(failures), len(results))
}

// collectCases expands every matching fixture, in scan order, and applies
// the case filter. It returns the cases and the number of fixtures used.
func (rc *RunCommand) collectCases() ([]*suite.Case, int, error) {
	fixtures, err := rc.scanner.Scan(rc.config.GetTestPath())
	if err != nil {
		return nil, 0, err
	}
	fixtures = rc.filter.FilterByName(fixtures, rc.config.Flags.NameFilter)

	done := rc.log.Timed("expand fixtures")
	defer done()

	validate := !rc.config.Flags.Lazy
	var cases []*suite.Case
	for _, fixture := range fixtures {
		s, err := rc.suites.ParseSuite(fixture, validate)
		if err != nil {
			reason := buildErrorReason(err)
			metrics.BuildErrors.WithLabelValues(reason).Inc()
			rc.log.WithError(err).Warnf("fixture %s not expanded (%s)", fixture, reason)
			return nil, 0, err
		}
		metrics.SuitesBuilt.Inc()
		rc.log.Debug("suite built", zap.String("suite", s.Name()), zap.String("fixture", fixture), zap.Int("cases", s.Len()))
		cases = append(cases, s.Cases()...)
	}

	return rc.filter.FilterCases(cases, rc.config.Flags.CaseFilter), len(fixtures), nil
}

// onlyFailed keeps the cases whose key is in failedKeys
func (rc *RunCommand) onlyFailed(cases []*suite.Case, failedKeys map[string]bool) []*suite.Case {
	var kept []*suite.Case
	for _, c := range cases {
		key := domain.TestFailure{
			TestName: c.Name(),
			FilePath: discovery.RelPath(rc.config.ProjectPath, c.Source()),
		}.Key()
		if failedKeys[key] {
			kept = append(kept, c)
		}
	}
	return kept
}

func buildErrorReason(err error) string {
	var verr *suite.ValidationError
	switch {
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, methods.ErrUnknownCatalog):
		return "catalog"
	}
	return "fixture"
}
