// Package sync orchestrates one-way repository synchronization: it prepares a
// working clone of the target repository, integrates source commits onto a
// sync branch, and reconciles a pull request for the result.
package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lsfreitas/repo-sync/internal/git"
	"github.com/lsfreitas/repo-sync/internal/logging"
)

// SourceRemoteName is the remote name under which the source repository is
// registered inside the target clone
const SourceRemoteName = "source"

// originRemoteName is the remote the target clone pushes to
const originRemoteName = "origin"

// Workspace is a temporary working clone of the target repository. It owns
// the directory it lives in and removes it on Cleanup.
type Workspace struct {
	git       git.Client
	logger    *logrus.Logger
	logConfig *logging.LogConfig

	root     string
	RepoPath string
}

// AcquireWorkspace creates a fresh temporary directory and clones the target
// repository into it. The caller must Cleanup the workspace when done.
func AcquireWorkspace(ctx context.Context, gitClient git.Client, logger *logrus.Logger, logConfig *logging.LogConfig, targetURL string) (*Workspace, error) {
	root, err := os.MkdirTemp("", "repo-sync-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	ws := &Workspace{
		git:       gitClient,
		logger:    logger,
		logConfig: logConfig,
		root:      root,
		RepoPath:  filepath.Join(root, "repo"),
	}

	entry := logging.WithStandardFields(logger, logConfig, logging.ComponentNames.Sync)
	entry.WithFields(logrus.Fields{
		logging.StandardFields.TargetRepo: targetURL,
		"workspace":                       ws.RepoPath,
	}).Debug("Cloning target repository")

	if err := gitClient.Clone(ctx, targetURL, ws.RepoPath); err != nil {
		_ = os.RemoveAll(root)
		return nil, err
	}

	return ws, nil
}

// AddSourceRemote registers the source repository as a remote in the clone.
// Re-registering the same remote is a no-op.
func (w *Workspace) AddSourceRemote(ctx context.Context, url string) error {
	return w.git.AddRemote(ctx, w.RepoPath, SourceRemoteName, url)
}

// FetchSource retrieves the source branch's history without merging it
func (w *Workspace) FetchSource(ctx context.Context, branch string) error {
	return w.git.Fetch(ctx, w.RepoPath, SourceRemoteName, branch)
}

// SourceRef returns the fully qualified ref for a fetched source branch
func SourceRef(branch string) string {
	return SourceRemoteName + "/" + branch
}

// EnsureSyncBranch leaves the clone checked out on the sync branch. Any
// integration left in flight by an earlier interrupted run is aborted first.
// An existing branch, local or on origin, is reused as-is; otherwise the
// branch is created from the base branch.
func (w *Workspace) EnsureSyncBranch(ctx context.Context, baseBranch, syncBranch string) error {
	if err := w.git.AbortMerge(ctx, w.RepoPath); err != nil {
		return err
	}
	if err := w.git.AbortCherryPick(ctx, w.RepoPath); err != nil {
		return err
	}

	entry := logging.WithStandardFields(w.logger, w.logConfig, logging.ComponentNames.Sync).
		WithField(logging.StandardFields.BranchName, syncBranch)

	exists, err := w.git.BranchExists(ctx, w.RepoPath, syncBranch)
	if err != nil {
		return err
	}
	if exists {
		entry.Debug("Reusing local sync branch")
		return w.git.Checkout(ctx, w.RepoPath, syncBranch)
	}

	onOrigin, err := w.git.RemoteBranchExists(ctx, w.RepoPath, originRemoteName, syncBranch)
	if err != nil {
		return err
	}
	if onOrigin {
		entry.Debug("Reusing sync branch from origin")
		if err := w.git.Fetch(ctx, w.RepoPath, originRemoteName, syncBranch); err != nil {
			return err
		}
		return w.git.Checkout(ctx, w.RepoPath, syncBranch)
	}

	entry.WithField("base_branch", baseBranch).Debug("Creating sync branch")
	if err := w.git.Checkout(ctx, w.RepoPath, baseBranch); err != nil {
		return err
	}

	return w.git.CreateBranch(ctx, w.RepoPath, syncBranch)
}

// PendingCommits returns the source commits not yet reachable from the sync
// branch, oldest first
func (w *Workspace) PendingCommits(ctx context.Context, sourceBranch string) ([]git.Commit, error) {
	return w.git.CommitsBetween(ctx, w.RepoPath, "HEAD", SourceRef(sourceBranch))
}

// Push publishes the sync branch to origin
func (w *Workspace) Push(ctx context.Context, branch string, force bool) error {
	return w.git.Push(ctx, w.RepoPath, originRemoteName, branch, force)
}

// Cleanup removes the source remote and deletes the workspace directory.
// Both steps are best effort; the temporary directory is gone either way.
func (w *Workspace) Cleanup(ctx context.Context) {
	if err := w.git.RemoveRemote(ctx, w.RepoPath, SourceRemoteName); err != nil && w.logger != nil {
		w.logger.WithError(err).Debug("Failed to remove source remote during cleanup")
	}

	if err := os.RemoveAll(w.root); err != nil && w.logger != nil {
		w.logger.WithError(err).Warn("Failed to remove workspace directory")
	}
}
