package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"casex/internal/config"
	"casex/internal/discovery"
	"casex/internal/logger"
	"casex/internal/storage"
	"casex/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	log       *logger.Logger
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		log:       logger.Nop(),
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	fixtures, err := lc.scanner.Scan(lc.config.GetTestPath())
	if err != nil {
		return err
	}
	fixtures = lc.filter.FilterByName(fixtures, lc.config.Flags.NameFilter)

	if len(fixtures) == 0 {
		color.Yellow("No fixtures found")
		return nil
	}

	lc.formatter.PrintTestList(fixtures, lc.config.Flags.TestCases, lc.lastFailures())
	return nil
}

// lastFailures returns the failure keys of the last run, or nil when there
// is no readable run.
func (lc *ListCommand) lastFailures() map[string]bool {
	st, release, err := openStore(lc.config)
	if err != nil {
		lc.log.WithError(err).Debugf("no results store for failure markers")
		return nil
	}
	defer release()

	last, err := st.Load()
	if err != nil {
		lc.log.WithError(err).Debugf("no previous run for failure markers")
		return nil
	}
	return storage.FailedKeys(last)
}
