package config

import (
	"fmt"
	"time"
)

// Default values applied to unset fields
const (
	defaultVersion  = 1
	defaultBranch   = "main"
	defaultStrategy = StrategyReplay
)

// SetDefaults fills in default values for unset fields
func (c *Config) SetDefaults() {
	if c.Version == 0 {
		c.Version = defaultVersion
	}

	if c.Target.Branch == "" {
		c.Target.Branch = defaultBranch
	}

	if c.Source.Branch == "" {
		c.Source.Branch = defaultBranch
	}

	if c.Sync.Strategy == "" {
		c.Sync.Strategy = defaultStrategy
	}
}

// SyncBranchName returns the configured sync branch name, or a timestamped
// name generated for this run. A generated name is unique per attempt, so
// pushes never collide with an earlier run's branch.
func (c *Config) SyncBranchName(now time.Time) string {
	if c.Sync.BranchName != "" {
		return c.Sync.BranchName
	}
	return fmt.Sprintf("sync-branch-%d", now.Unix())
}
