package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	appErrors "github.com/lsfreitas/repo-sync/internal/errors"
)

// ErrConfiguration indicates a missing or malformed required input
var ErrConfiguration = errors.New("configuration error")

// repoPathPattern matches an owner/name repository path
var repoPathPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*/[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Validate checks the configuration for required inputs and consistency.
// Defaults are expected to have been applied already.
func (c *Config) Validate() error {
	if c.Target.URL == "" && c.Target.Repo == "" {
		return configErr(appErrors.RequiredFieldError("target repository (target.url, target.repo, or TARGET_REPO_URL)"))
	}

	if c.Source.URL == "" {
		return configErr(appErrors.RequiredFieldError("source repository (source.url or SOURCE_REPO_URL)"))
	}

	if c.Target.Branch == "" {
		return configErr(appErrors.EmptyFieldError("target.branch"))
	}

	if c.Source.Branch == "" {
		return configErr(appErrors.EmptyFieldError("source.branch"))
	}

	if c.Sync.Strategy != StrategyMerge && c.Sync.Strategy != StrategyReplay {
		return configErr(appErrors.FormatError("sync.strategy", c.Sync.Strategy, "merge or replay"))
	}

	if c.Target.Repo != "" && !repoPathPattern.MatchString(c.Target.Repo) {
		return configErr(appErrors.FormatError("target.repo", c.Target.Repo, "owner/repo"))
	}

	// The reconciler needs the owner/name form; derive it when only a URL
	// was given
	if c.Target.Repo == "" {
		repo, err := repoPathFromURL(c.Target.URL)
		if err != nil {
			return configErr(err)
		}
		c.Target.Repo = repo
	}

	if c.Source.Repo == "" && c.Source.URL != "" {
		// Best effort: source repo name is only used for commit links
		if repo, err := repoPathFromURL(c.Source.URL); err == nil {
			c.Source.Repo = repo
		}
	}

	// A repo path alone is enough to clone from github.com
	if c.Target.URL == "" {
		c.Target.URL = fmt.Sprintf("https://github.com/%s.git", c.Target.Repo)
	}

	return nil
}

// configErr wraps a field error with the configuration sentinel
func configErr(err error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, err)
}

// repoPathFromURL extracts the owner/name path from a clone URL.
// Supported forms: https://host/owner/name(.git), ssh://git@host/owner/name(.git),
// and the scp-like git@host:owner/name(.git).
func repoPathFromURL(rawURL string) (string, error) {
	trimmed := strings.TrimSuffix(rawURL, ".git")
	trimmed = strings.TrimSuffix(trimmed, "/")

	var path string
	switch {
	case strings.Contains(trimmed, "://"):
		_, rest, _ := strings.Cut(trimmed, "://")
		_, path, _ = strings.Cut(rest, "/")
	case strings.Contains(trimmed, "@") && strings.Contains(trimmed, ":"):
		_, path, _ = strings.Cut(trimmed, ":")
	default:
		path = trimmed
	}

	if !repoPathPattern.MatchString(path) {
		return "", appErrors.FormatError("repository URL", rawURL, "a URL ending in owner/repo")
	}

	return path, nil
}
