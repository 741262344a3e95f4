package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lsfreitas/repo-sync/internal/config"
	"github.com/lsfreitas/repo-sync/internal/gh"
	"github.com/lsfreitas/repo-sync/internal/git"
	"github.com/lsfreitas/repo-sync/internal/logging"
	"github.com/lsfreitas/repo-sync/internal/output"
	"github.com/lsfreitas/repo-sync/internal/sync"
)

//nolint:gochecknoglobals // Cobra commands are designed to be global variables
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync attempt from source to target",
	Long: `Run a complete sync attempt: clone the target repository, fetch the
source branch, integrate the pending commits onto the sync branch, push it,
and open or refresh the pull request.

The pull request opens as a draft when conflicting content had to be
committed for manual resolution.`,
	Example: `  # Sync using the default config file
  repo-sync sync --config sync.yaml

  # Environment-only configuration, as in CI
  TARGET_REPO_URL=... SOURCE_REPO_URL=... repo-sync sync

  # Integrate locally without pushing
  repo-sync sync --dry-run`,
	Aliases: []string{"s"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return NewSyncCommand().ExecuteSync(cmd.Context(), globalFlags)
	},
}

// ConfigLoader defines the interface for configuration loading
type ConfigLoader interface {
	LoadConfig(configPath string) (*config.Config, error)
}

// DriverRunner runs a sync attempt to completion
type DriverRunner interface {
	Run(ctx context.Context) (*sync.Result, error)
}

// DriverFactory builds the sync driver with its git and GitHub clients
type DriverFactory interface {
	CreateDriver(ctx context.Context, cfg *config.Config, logger *logrus.Logger, logConfig *logging.LogConfig) (DriverRunner, error)
}

// DefaultConfigLoader implements ConfigLoader
type DefaultConfigLoader struct{}

// LoadConfig loads and parses configuration from file. A missing file is
// tolerated when the environment supplies the required values.
func (d *DefaultConfigLoader) LoadConfig(configPath string) (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := &config.Config{}
		cfg.ApplyEnv()
		cfg.SetDefaults()
		return cfg, nil
	}

	return config.Load(configPath)
}

// DefaultDriverFactory implements DriverFactory
type DefaultDriverFactory struct{}

// CreateDriver wires the real git and GitHub clients into a driver
func (d *DefaultDriverFactory) CreateDriver(ctx context.Context, cfg *config.Config, logger *logrus.Logger, logConfig *logging.LogConfig) (DriverRunner, error) {
	gitClient, err := git.NewClient(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create git client: %w", err)
	}

	ghClient, err := gh.NewClient(ctx, logger, logConfig, cfg.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return sync.NewDriver(cfg, gitClient, ghClient, logger, logConfig), nil
}

// SyncCommand represents a testable sync command
type SyncCommand struct {
	configLoader  ConfigLoader
	driverFactory DriverFactory
	outputWriter  output.Writer
}

// NewSyncCommand creates a new SyncCommand with default dependencies
func NewSyncCommand() *SyncCommand {
	return &SyncCommand{
		configLoader:  &DefaultConfigLoader{},
		driverFactory: &DefaultDriverFactory{},
		outputWriter:  output.NewColoredWriter(os.Stdout, os.Stderr),
	}
}

// NewSyncCommandWithDependencies creates a new SyncCommand with injectable dependencies
func NewSyncCommandWithDependencies(configLoader ConfigLoader, driverFactory DriverFactory, outputWriter output.Writer) *SyncCommand {
	return &SyncCommand{
		configLoader:  configLoader,
		driverFactory: driverFactory,
		outputWriter:  outputWriter,
	}
}

// ExecuteSync runs one sync attempt with the given flags
func (s *SyncCommand) ExecuteSync(ctx context.Context, flags *Flags) error {
	logger := logrus.StandardLogger()
	logConfig := flags.LogConfig()

	cfg, err := s.configLoader.LoadConfig(flags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if flags.DryRun {
		s.outputWriter.Warn("DRY-RUN MODE: Nothing will be pushed and no pull request will be opened")
	}

	driver, err := s.driverFactory.CreateDriver(ctx, cfg, logger, logConfig)
	if err != nil {
		return err
	}

	result, err := driver.Run(ctx)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	s.report(result)
	return nil
}

// report prints the outcome of a completed sync attempt
func (s *SyncCommand) report(result *sync.Result) {
	switch result.Outcome {
	case sync.OutcomeNoChanges:
		s.outputWriter.Success("Target is already up to date with the source branch")

	case sync.OutcomeDryRun:
		s.outputWriter.Infof("Dry run: %d commit(s) would be synced on branch %s",
			result.Integration.Applied, result.SyncBranch)
		if result.Summary != "" {
			s.outputWriter.Plain(result.Summary)
		}

	case sync.OutcomePullRequestReady:
		if result.PRCreated {
			s.outputWriter.Successf("Pull request #%d opened: %s", result.PR.Number, result.PR.HTMLURL)
		} else {
			s.outputWriter.Successf("Pull request #%d updated: %s", result.PR.Number, result.PR.HTMLURL)
		}

	case sync.OutcomePullRequestDraft:
		if result.PRCreated {
			s.outputWriter.Warnf("Pull request #%d opened as draft; conflicts need manual resolution: %s",
				result.PR.Number, result.PR.HTMLURL)
		} else {
			s.outputWriter.Warnf("Pull request #%d updated; conflicts need manual resolution: %s",
				result.PR.Number, result.PR.HTMLURL)
		}
	}
}
