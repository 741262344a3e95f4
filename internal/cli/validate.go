package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lsfreitas/repo-sync/internal/config"
	"github.com/lsfreitas/repo-sync/internal/output"
)

//nolint:gochecknoglobals // Cobra commands are designed to be global variables
var validateCmd = &cobra.Command{
	Use:     "validate",
	Short:   "Validate configuration",
	Long:    `Validate the configuration file and environment overrides for syntax and semantic errors.`,
	Aliases: []string{"v", "check"},
	RunE:    runValidate,
}

func runValidate(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(globalFlags.ConfigFile); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrConfigFileNotFound, globalFlags.ConfigFile)
	}

	cfg, err := config.Load(globalFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	output.Success("Configuration is valid")
	output.Infof("Target: %s (%s)", cfg.Target.Repo, cfg.Target.Branch)
	output.Infof("Source: %s (%s)", cfg.Source.URL, cfg.Source.Branch)
	output.Infof("Strategy: %s", cfg.Sync.Strategy)

	return nil
}
