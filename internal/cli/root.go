// Package cli implements the command-line interface for repo-sync.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lsfreitas/repo-sync/internal/logging"
	"github.com/lsfreitas/repo-sync/internal/output"
)

//nolint:gochecknoglobals // Cobra commands are designed to be global variables
var rootCmd = &cobra.Command{
	Use:   "repo-sync",
	Short: "Mirror one repository's branch into another via pull request",
	Long: `repo-sync performs one-way repository synchronization: it clones the
target repository, fetches the source branch, integrates the pending source
commits onto a sync branch, pushes it, and opens or refreshes a pull request.

Every run starts from a fresh clone; nothing is stored between runs.`,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

//nolint:gochecknoinits // Cobra commands require init() for flag registration
func init() {
	registerFlags(rootCmd, globalFlags)

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// registerFlags binds the global flag set to a command
func registerFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVarP(&flags.ConfigFile, "config", "c", "sync.yaml", "Path to configuration file")
	cmd.PersistentFlags().BoolVar(&flags.DryRun, "dry-run", false, "Integrate locally without pushing or opening a pull request")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.DebugGit, "debug-git", false, "Log git command execution")
	cmd.PersistentFlags().BoolVar(&flags.DebugAPI, "debug-api", false, "Log GitHub API requests")
	cmd.PersistentFlags().BoolVar(&flags.DebugConfig, "debug-config", false, "Log configuration loading")
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := ExecuteWithContext(context.Background()); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}

// ExecuteWithContext runs the CLI under the given context. An interrupt
// signal cancels the context so an in-flight sync stops cleanly.
func ExecuteWithContext(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		output.Warn("Interrupt received, canceling...")
		cancel()
	}()

	return rootCmd.ExecuteContext(ctx)
}

// setupLogging configures the global logger from the log level flag. Any
// component-specific debug flag raises the level to debug, and a redaction
// hook keeps credentials out of every entry.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := logrus.ParseLevel(strings.ToLower(globalFlags.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", globalFlags.LogLevel, err)
	}

	if globalFlags.DebugGit || globalFlags.DebugAPI || globalFlags.DebugConfig {
		level = logrus.DebugLevel
	}

	logger := logrus.StandardLogger()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:    false,
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05",
		PadLevelText:     true,
		QuoteEmptyFields: true,
	})

	// Log to stderr to keep stdout clean for output
	logger.SetOutput(os.Stderr)

	configureRedaction(logger)

	logger.WithFields(logrus.Fields{
		"config":    globalFlags.ConfigFile,
		"dry_run":   globalFlags.DryRun,
		"log_level": level.String(),
	}).Debug("CLI initialized")

	return nil
}

// configureRedaction installs the credential redaction hook exactly once
func configureRedaction(logger *logrus.Logger) {
	for _, hooks := range logger.Hooks {
		for _, hook := range hooks {
			if _, ok := hook.(*logging.RedactionHook); ok {
				return
			}
		}
	}

	logger.AddHook(logging.NewRedactionService().CreateHook())
}
