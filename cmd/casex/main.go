package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"casex/internal/cli"
	"casex/internal/cli/commands"
	"casex/internal/config"
	"casex/internal/ui"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "casex",
		Short:   "Parameterized case expander and runner",
		Long:    `casex expands YAML parameter fixtures across method catalogs into independently reported cases and runs them in parallel.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// The stats table already reported the failing cases
		if !errors.Is(err, commands.ErrCasesFailed) {
			ui.PrintError(err)
		}
		os.Exit(1)
	}
}
