package sync

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/lsfreitas/repo-sync/internal/config"
	"github.com/lsfreitas/repo-sync/internal/git"
	"github.com/lsfreitas/repo-sync/internal/logging"
)

// IntegrationResult describes what an integration strategy did to the sync
// branch
type IntegrationResult struct {
	// Strategy is the name of the strategy that produced this result
	Strategy string

	// Applied counts commits landed on the sync branch
	Applied int

	// Skipped counts commits whose changes were already present
	Skipped int

	// Conflicted reports whether any conflicting content was committed
	// as-is for manual resolution
	Conflicted bool

	// ConflictedSHAs lists the source commits that stopped on conflicts,
	// in application order
	ConflictedSHAs []string
}

// Integrator applies source history onto the current branch of a working
// clone. Content conflicts are handled in place and reported through the
// result; only non-conflict failures return an error.
type Integrator interface {
	Name() string
	Integrate(ctx context.Context, repoPath, sourceRef string, commits []git.Commit) (*IntegrationResult, error)
}

// NewIntegrator returns the integrator for a validated strategy name
func NewIntegrator(strategy string, gitClient git.Client, logger *logrus.Logger, logConfig *logging.LogConfig) (Integrator, error) {
	switch strategy {
	case config.StrategyMerge:
		return &mergeIntegrator{git: gitClient, logger: logger, logConfig: logConfig}, nil
	case config.StrategyReplay:
		return &replayIntegrator{git: gitClient, logger: logger, logConfig: logConfig}, nil
	default:
		return nil, fmt.Errorf("unknown integration strategy: %s", strategy)
	}
}

// mergeIntegrator brings the whole source branch over in a single merge.
// Unrelated histories are allowed because source and target may not share
// an ancestor. A conflicted merge is committed with the conflicting content
// staged as-is, leaving resolution to the pull request review.
type mergeIntegrator struct {
	git       git.Client
	logger    *logrus.Logger
	logConfig *logging.LogConfig
}

func (m *mergeIntegrator) Name() string { return config.StrategyMerge }

func (m *mergeIntegrator) Integrate(ctx context.Context, repoPath, sourceRef string, commits []git.Commit) (*IntegrationResult, error) {
	result := &IntegrationResult{Strategy: m.Name()}

	err := m.git.Merge(ctx, repoPath, sourceRef, true)
	if err == nil {
		result.Applied = len(commits)
		return result, nil
	}

	if !errors.Is(err, git.ErrConflict) {
		return nil, err
	}

	logging.WithStandardFields(m.logger, m.logConfig, logging.ComponentNames.Sync).
		WithField(logging.StandardFields.CommitCount, len(commits)).
		Warn("Merge stopped on conflicts, committing conflicted state")

	if err := m.git.Add(ctx, repoPath, "."); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Merge %s (unresolved conflicts committed for review)", sourceRef)
	if err := m.git.Commit(ctx, repoPath, message); err != nil {
		return nil, err
	}

	result.Applied = len(commits)
	result.Conflicted = true
	return result, nil
}

// replayIntegrator cherry-picks each source commit in order, oldest first.
// A conflicting pick is continued with the conflicting content staged as-is;
// a pick whose changes are already present is skipped.
type replayIntegrator struct {
	git       git.Client
	logger    *logrus.Logger
	logConfig *logging.LogConfig
}

func (r *replayIntegrator) Name() string { return config.StrategyReplay }

func (r *replayIntegrator) Integrate(ctx context.Context, repoPath, _ string, commits []git.Commit) (*IntegrationResult, error) {
	result := &IntegrationResult{Strategy: r.Name()}
	entry := logging.WithStandardFields(r.logger, r.logConfig, logging.ComponentNames.Sync)

	for _, commit := range commits {
		commitEntry := entry.WithField(logging.StandardFields.CommitSHA, commit.SHA)

		err := r.git.CherryPick(ctx, repoPath, commit.SHA)
		switch {
		case err == nil:
			result.Applied++

		case errors.Is(err, git.ErrNoChanges):
			commitEntry.Debug("Commit already present, skipping")
			if err := r.git.AbortCherryPick(ctx, repoPath); err != nil {
				return nil, err
			}
			result.Skipped++

		case errors.Is(err, git.ErrConflict):
			commitEntry.Warn("Cherry-pick stopped on conflicts, staging conflicted state")

			if err := r.git.Add(ctx, repoPath, "."); err != nil {
				return nil, err
			}

			continueErr := r.git.CherryPickContinue(ctx, repoPath)
			switch {
			case continueErr == nil:
				result.Applied++
				result.Conflicted = true
				result.ConflictedSHAs = append(result.ConflictedSHAs, commit.SHA)

			case errors.Is(continueErr, git.ErrNoChanges):
				// Staging resolved the pick to an empty commit
				commitEntry.Debug("Conflicted pick resolved empty, skipping")
				if err := r.git.AbortCherryPick(ctx, repoPath); err != nil {
					return nil, err
				}
				result.Skipped++

			default:
				return nil, continueErr
			}

		default:
			return nil, err
		}
	}

	return result, nil
}
