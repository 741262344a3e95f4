package config

import "os"

// Environment variable names recognized as configuration overrides.
// These mirror the variables the original automation consumed, so the
// tool drops into existing CI jobs without a config file.
const (
	EnvTargetRepoURL = "TARGET_REPO_URL"
	EnvSourceRepoURL = "SOURCE_REPO_URL"
	EnvTargetBranch  = "TARGET_BRANCH"
	EnvSourceBranch  = "SOURCE_BRANCH"
	EnvSyncBranch    = "SYNC_BRANCH"
	EnvGitHubToken   = "GITHUB_TOKEN"
)

// ApplyEnv overlays environment variables onto the configuration.
// Set variables win over file values; unset variables change nothing.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTargetRepoURL); v != "" {
		c.Target.URL = v
	}
	if v := os.Getenv(EnvSourceRepoURL); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvTargetBranch); v != "" {
		c.Target.Branch = v
	}
	if v := os.Getenv(EnvSourceBranch); v != "" {
		c.Source.Branch = v
	}
	if v := os.Getenv(EnvSyncBranch); v != "" {
		c.Sync.BranchName = v
	}
	if v := os.Getenv(EnvGitHubToken); v != "" {
		c.AuthToken = v
	}
}
