// Package git provides Git repository operations
package git

import "context"

// Commit is a single commit as reported by git log
type Commit struct {
	SHA     string
	Message string
}

// Client defines the interface for Git operations
type Client interface {
	// Clone clones a repository to the specified path
	Clone(ctx context.Context, url, path string) error

	// AddRemote registers a named remote. Adding a remote whose name
	// already exists is a no-op.
	AddRemote(ctx context.Context, repoPath, name, url string) error

	// RemoveRemote deletes a named remote. Removing a remote that does
	// not exist is a no-op.
	RemoveRemote(ctx context.Context, repoPath, name string) error

	// Fetch retrieves a single branch's history from the remote without merging
	Fetch(ctx context.Context, repoPath, remote, branch string) error

	// Checkout switches to the specified branch
	Checkout(ctx context.Context, repoPath, branch string) error

	// CreateBranch creates a new branch from the current HEAD and switches to it
	CreateBranch(ctx context.Context, repoPath, branch string) error

	// BranchExists reports whether a local branch exists
	BranchExists(ctx context.Context, repoPath, branch string) (bool, error)

	// RemoteBranchExists reports whether a branch exists on the remote
	// without fetching it
	RemoteBranchExists(ctx context.Context, repoPath, remote, branch string) (bool, error)

	// Merge merges ref into the current branch. When allowUnrelated is
	// true, histories without a common ancestor may be combined.
	// Returns ErrConflict when the merge stops on conflicting paths.
	Merge(ctx context.Context, repoPath, ref string, allowUnrelated bool) error

	// AbortMerge cancels an in-flight merge, restoring a clean working tree.
	// Aborting when no merge is in progress is a no-op.
	AbortMerge(ctx context.Context, repoPath string) error

	// CherryPick applies a single commit onto the current branch with -x,
	// recording the origin SHA in the message. Returns ErrConflict when
	// the pick stops on conflicting paths and ErrNoChanges when the
	// commit's changes are already present.
	CherryPick(ctx context.Context, repoPath, sha string) error

	// CherryPickContinue resumes a conflicted cherry-pick after the
	// conflicting paths have been staged. Returns ErrNoChanges when the
	// resolution left nothing to commit.
	CherryPickContinue(ctx context.Context, repoPath string) error

	// AbortCherryPick cancels an in-flight cherry-pick. Aborting when no
	// cherry-pick is in progress is a no-op.
	AbortCherryPick(ctx context.Context, repoPath string) error

	// Add stages files for commit. Paths are relative to repo root.
	// Use "." to stage all changes
	Add(ctx context.Context, repoPath string, paths ...string) error

	// Commit creates a commit with the specified message
	Commit(ctx context.Context, repoPath, message string) error

	// Push pushes a branch to the remote
	// If force is true, uses --force flag
	Push(ctx context.Context, repoPath, remote, branch string, force bool) error

	// CommitsBetween returns the commits reachable from refB but not from
	// refA, oldest first. The list is recomputed on every call.
	CommitsBetween(ctx context.Context, repoPath, refA, refB string) ([]Commit, error)

	// GetCurrentBranch returns the name of the current branch
	GetCurrentBranch(ctx context.Context, repoPath string) (string, error)
}
