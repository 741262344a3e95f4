package config

// Config represents the complete sync configuration
type Config struct {
	Version int           `yaml:"version"`
	Target  RepositoryRef `yaml:"target"`
	Source  RepositoryRef `yaml:"source"`
	Sync    SyncOptions   `yaml:"sync,omitempty"`

	// AuthToken is the credential for the hosting API and authenticated
	// push. Environment only; never read from the config file.
	AuthToken string `yaml:"-"`
}

// RepositoryRef identifies a remote repository; immutable once configured
type RepositoryRef struct {
	URL    string `yaml:"url"`            // Clone/push URL
	Repo   string `yaml:"repo,omitempty"` // Format: owner/repo; derived from URL when omitted
	Branch string `yaml:"branch"`         // Default: main
}

// SyncOptions controls how the sync branch is built and published
type SyncOptions struct {
	// BranchName is the sync branch in the target repository. When empty
	// a timestamped name is generated per run.
	BranchName string `yaml:"branch_name,omitempty"`

	// Strategy selects the integration algorithm: "merge" brings the
	// whole source branch over in one operation, "replay" cherry-picks
	// each source commit in order. Default: replay.
	Strategy string `yaml:"strategy,omitempty"`

	// ForcePush overwrites remote sync branch state on push. Only safe
	// with a reused explicit branch name.
	ForcePush bool `yaml:"force_push,omitempty"`

	// PRTitle overrides the generated pull request title
	PRTitle string `yaml:"pr_title,omitempty"`
}

// Integration strategy names accepted in SyncOptions.Strategy
const (
	StrategyMerge  = "merge"
	StrategyReplay = "replay"
)
