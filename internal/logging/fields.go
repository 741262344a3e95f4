// Package logging provides logging configuration types and utilities.
package logging

import "github.com/sirupsen/logrus"

// StandardFields defines the standardized field names for structured logging
// across all components to ensure consistency and enable better log analysis.
//
//nolint:gochecknoglobals // Intentional global constants for standardized field names
var StandardFields = struct {
	// Repository identifiers
	SourceRepo string
	TargetRepo string

	// Timing and performance
	DurationMs string
	Timestamp  string

	// Operation context
	Component     string
	Operation     string
	CorrelationID string

	// Resource identifiers
	CommitSHA  string
	BranchName string
	PRNumber   string

	// Content metrics
	ContentSize string
	CommitCount string

	// Error information
	Error    string
	ExitCode string

	// Status and progress
	Status string
}{
	SourceRepo: "source_repo",
	TargetRepo: "target_repo",

	DurationMs: "duration_ms",
	Timestamp:  "@timestamp",

	Component:     "component",
	Operation:     "operation",
	CorrelationID: "correlation_id",

	CommitSHA:  "commit_sha",
	BranchName: "branch_name",
	PRNumber:   "pr_number",

	ContentSize: "content_size",
	CommitCount: "commit_count",

	Error:    "error",
	ExitCode: "exit_code",

	Status: "status",
}

// ComponentNames defines standardized component names for logging consistency
//
//nolint:gochecknoglobals // Intentional global constants for standardized component names
var ComponentNames = struct {
	Git  string
	API  string
	CLI  string
	Sync string
}{
	Git:  "git",
	API:  "github-api",
	CLI:  "cli",
	Sync: "sync-driver",
}

// OperationTypes defines standardized operation type names
//
//nolint:gochecknoglobals // Intentional global constants for standardized operation types
var OperationTypes = struct {
	GitCommand     string
	APIRequest     string
	ConfigValidate string
	SyncExecute    string
}{
	GitCommand:     "git_command",
	APIRequest:     "api_request",
	ConfigValidate: "config_validate",
	SyncExecute:    "sync_execute",
}

// WithStandardFields creates a logrus entry pre-populated with the component
// name and, when available, the correlation ID for the current sync attempt.
func WithStandardFields(logger *logrus.Logger, config *LogConfig, component string) *logrus.Entry {
	fields := logrus.Fields{
		StandardFields.Component: component,
	}

	if config != nil && config.CorrelationID != "" {
		fields[StandardFields.CorrelationID] = config.CorrelationID
	}

	return logger.WithFields(fields)
}
