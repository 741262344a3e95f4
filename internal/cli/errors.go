package cli

import "errors"

// Common CLI errors
var (
	// ErrConfigFileNotFound indicates the configuration file was not found
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
