package commands

import (
	"io"

	"github.com/spf13/cobra"

	"casex/internal/cli"
	"casex/internal/config"
	"casex/internal/discovery"
	"casex/internal/execution"
	"casex/internal/logger"
	"casex/internal/parser"
	"casex/internal/storage"
	"casex/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Faills  *FaillsCommand

	runner *execution.Runner
	log    *logger.Logger
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	suiteParser := discovery.NewParser()
	runner := execution.NewRunner(nil)
	scheduler := execution.NewRoundRobinScheduler()
	resultParser := parser.NewResultParser()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, resultParser)
	formatter := ui.NewFormatter(cfg, suiteParser)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, suiteParser, executor, resultParser, formatter),
		List:    NewListCommand(cfg, scanner, filter, formatter),
		Migrate: NewMigrateCommand(cfg),
		Faills:  NewFaillsCommand(cfg),
		runner:  runner,
		log:     logger.Nop(),
	}
}

// prepare layers .env, environment and flags onto cfg and builds the logger.
func (c *Commands) prepare(flags *cli.Flags, cfg *config.Config) error {
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	cfg.Apply(flags.ToConfigFlags())
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.LevelFromString(cfg.LogLevel), cfg.LogFormat)
	if err != nil {
		return err
	}
	c.log = log
	c.runner.SetLogger(log)
	c.Run.log = log
	c.List.log = log
	c.Migrate.log = log
	return nil
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.prepare(flags, cfg)
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = c.log.Sync()
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Expand fixtures into cases and run them in parallel",
		Long:  "Discover parameter fixtures, expand every set against its method catalog and execute the cases using parallel workers",
		RunE:  c.Run.Execute,
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "p", 0, "Number of workers to use (default from CASEX_WORKERS, else 1)")
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where fixture detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter fixtures by file name pattern (supports wildcards, e.g. '*concat*')")
	runCmd.Flags().StringVarP(&flags.CaseFilter, "case", "k", "", "Filter cases by name pattern (e.g. 'GeneratedString[*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failed or errored case")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only cases that failed in the last run")
	runCmd.Flags().BoolVar(&flags.Lazy, "lazy", false, "Skip build-time parameter validation; bad fields error when their case runs")
	runCmd.Flags().StringVar(&flags.Store, "store", "", "Results store: json or mysql (default from CASEX_STORE, else json)")
	runCmd.Flags().StringVar(&flags.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running, e.g. :9090")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered fixtures",
		Long:  "Scan and list parameter fixtures, or their expanded cases, without executing them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter fixtures by file name pattern (supports wildcards, e.g. '*concat*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where fixture detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List expanded cases under each fixture")
	listCmd.Flags().StringVar(&flags.Store, "store", "", "Results store used for [F] markers: json or mysql")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL results schema",
		Long:  "Create the results database and tables used by --store mysql, using DB_* settings",
		RunE:  c.Migrate.Execute,
	}
	rootCmd.AddCommand(migrateCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View case failures interactively",
		Long:  "Display failed and errored cases from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
	}
	faillsCmd.Flags().StringVar(&flags.Store, "store", "", "Results store to read: json or mysql")
	rootCmd.AddCommand(faillsCmd)
}

// openStore opens the configured results store; the returned func releases it.
func openStore(cfg *config.Config) (storage.Storage, func(), error) {
	st, err := storage.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	release := func() {}
	if closer, ok := st.(io.Closer); ok {
		release = func() { _ = closer.Close() }
	}
	return st, release, nil
}
