package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"casex/internal/config"
	"casex/internal/logger"
	"casex/internal/storage"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	config *config.Config
	log    *logger.Logger
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(cfg *config.Config) *MigrateCommand {
	return &MigrateCommand{
		config: cfg,
		log:    logger.Nop(),
	}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	db := mc.config.Database
	color.Cyan("Migrating results schema on %s:%s/%s", db.Host, db.Port, db.Name)

	done := mc.log.Timed("migrate results schema")
	results, err := storage.Migrate(cmd.Context(), mc.config)
	done()

	for _, r := range results {
		if r.Success {
			fmt.Printf("%s %s\n", color.GreenString("✓"), r.Object)
		} else {
			fmt.Printf("%s %s: %v\n", color.RedString("✗"), r.Object, r.Error)
		}
	}
	if err != nil {
		mc.log.WithError(err).Errorf("migration stopped after %d object(s)", len(results))
		return err
	}
	mc.log.Infof("migrated %d schema object(s) in %s", len(results), db.Name)

	color.Green("Schema ready, use --store mysql to record runs")
	return nil
}
