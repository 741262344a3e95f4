// Package logging provides logging configuration types and utilities.
//
// This package defines the logging configuration structures used throughout
// the application to enable component-specific debug logging and verbose
// output control. It avoids import cycles by being a leaf dependency.
package logging

import (
	"crypto/rand"
	"encoding/hex"
)

// LogConfig holds all logging and CLI configuration.
//
// This configuration is passed via dependency injection throughout the
// application to avoid global state and enable better testing isolation.
type LogConfig struct {
	ConfigFile    string
	DryRun        bool
	LogLevel      string
	Debug         DebugFlags
	CorrelationID string // Unique ID for request correlation
}

// DebugFlags contains component-specific debug flags for targeted troubleshooting.
//
// Each flag enables detailed logging for a specific component:
// - Git: git command execution, timing, and output
// - API: GitHub API requests, responses, and timing
// - Config: configuration loading and validation
type DebugFlags struct {
	Git    bool // --debug-git flag
	API    bool // --debug-api flag
	Config bool // --debug-config flag
}

// GenerateCorrelationID creates a unique correlation ID for request tracing.
//
// Returns a 16-byte hex-encoded string that can be used to correlate
// log entries across different components for the same sync attempt.
func GenerateCorrelationID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to a simple static ID if crypto/rand fails
		return "fallback-id"
	}
	return hex.EncodeToString(bytes)
}

// WithCorrelationID creates a new LogConfig with the specified correlation ID.
func (lc *LogConfig) WithCorrelationID(correlationID string) *LogConfig {
	if lc == nil {
		return &LogConfig{CorrelationID: correlationID}
	}

	newConfig := *lc
	newConfig.CorrelationID = correlationID
	return &newConfig
}
