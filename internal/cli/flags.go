package cli

import "github.com/lsfreitas/repo-sync/internal/logging"

// Flags contains all global flags for the CLI
type Flags struct {
	ConfigFile  string
	DryRun      bool
	LogLevel    string
	DebugGit    bool
	DebugAPI    bool
	DebugConfig bool
}

// LogConfig converts the flags into a logging configuration with a fresh
// correlation ID for this invocation
func (f *Flags) LogConfig() *logging.LogConfig {
	return &logging.LogConfig{
		ConfigFile: f.ConfigFile,
		DryRun:     f.DryRun,
		LogLevel:   f.LogLevel,
		Debug: logging.DebugFlags{
			Git:    f.DebugGit,
			API:    f.DebugAPI,
			Config: f.DebugConfig,
		},
		CorrelationID: logging.GenerateCorrelationID(),
	}
}

// globalFlags is the singleton instance of flags
//
//nolint:gochecknoglobals // Cobra flag binding requires package-level state
var globalFlags = &Flags{
	ConfigFile: "sync.yaml",
	LogLevel:   "info",
}
