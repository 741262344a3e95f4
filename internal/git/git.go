package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Common errors
var (
	ErrGitNotFound      = errors.New("git command not found in PATH")
	ErrNotARepository   = errors.New("not a git repository")
	ErrRepositoryExists = errors.New("repository already exists")
	ErrNoChanges        = errors.New("no changes to commit")
	ErrGitCommand       = errors.New("git command failed")
	ErrConflict         = errors.New("integration stopped on conflicting paths")
	ErrBranchNotFound   = errors.New("branch not found on remote")
)

// gitClient implements the Client interface using git commands
type gitClient struct {
	logger *logrus.Logger
}

// NewClient creates a new Git client
func NewClient(logger *logrus.Logger) (Client, error) {
	// Check if git is available
	if _, err := exec.LookPath("git"); err != nil {
		return nil, ErrGitNotFound
	}

	return &gitClient{
		logger: logger,
	}, nil
}

// Clone clones a repository to the specified path
func (g *gitClient) Clone(ctx context.Context, url, path string) error {
	// Check if path already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrRepositoryExists, path)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", url, path)

	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	return nil
}

// AddRemote registers a named remote, treating an existing remote with the
// same name as a no-op
func (g *gitClient) AddRemote(ctx context.Context, repoPath, name, url string) error {
	if g.remoteExists(ctx, repoPath, name) {
		if g.logger != nil {
			g.logger.WithField("remote", name).Debug("Remote already configured, skipping add")
		}
		return nil
	}

	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "remote", "add", name, url)

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}

	return nil
}

// RemoveRemote deletes a named remote, treating a missing remote as a no-op
func (g *gitClient) RemoveRemote(ctx context.Context, repoPath, name string) error {
	if !g.remoteExists(ctx, repoPath, name) {
		return nil
	}

	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "remote", "remove", name)

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", name, err)
	}

	return nil
}

// remoteExists reports whether a remote with the given name is configured
func (g *gitClient) remoteExists(ctx context.Context, repoPath, name string) bool {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "remote", "get-url", name)

	return cmd.Run() == nil
}

// Fetch retrieves a single branch's history from the remote
func (g *gitClient) Fetch(ctx context.Context, repoPath, remote, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "fetch", remote, branch)

	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := g.runCommand(cmd); err != nil {
		if strings.Contains(err.Error(), "couldn't find remote ref") {
			return fmt.Errorf("%w: %s/%s", ErrBranchNotFound, remote, branch)
		}
		return fmt.Errorf("failed to fetch %s from %s: %w", branch, remote, err)
	}

	return nil
}

// Checkout switches to the specified branch
func (g *gitClient) Checkout(ctx context.Context, repoPath, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "checkout", branch)

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branch, err)
	}

	return nil
}

// CreateBranch creates a new branch from the current HEAD
func (g *gitClient) CreateBranch(ctx context.Context, repoPath, branch string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "checkout", "-b", branch)

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}

	return nil
}

// BranchExists reports whether a local branch exists
func (g *gitClient) BranchExists(ctx context.Context, repoPath, branch string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)

	if err := cmd.Run(); err != nil {
		return false, nil
	}

	return true, nil
}

// RemoteBranchExists reports whether a branch exists on the remote
func (g *gitClient) RemoteBranchExists(ctx context.Context, repoPath, remote, branch string) (bool, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "ls-remote", "--heads", remote, branch)

	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("failed to query remote branches: %w", err)
	}

	return len(bytes.TrimSpace(output)) > 0, nil
}

// Merge merges ref into the current branch
func (g *gitClient) Merge(ctx context.Context, repoPath, ref string, allowUnrelated bool) error {
	args := []string{"-C", repoPath, "merge", "--no-edit"}
	if allowUnrelated {
		args = append(args, "--allow-unrelated-histories")
	}
	args = append(args, ref)

	cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // Arguments are safely constructed

	if err := g.runCommand(cmd); err != nil {
		return g.classifyIntegrationError(ctx, repoPath, ref, err)
	}

	return nil
}

// AbortMerge cancels an in-flight merge; a no-op when no merge is in progress
func (g *gitClient) AbortMerge(ctx context.Context, repoPath string) error {
	if _, err := os.Stat(filepath.Join(repoPath, ".git", "MERGE_HEAD")); err != nil {
		return nil
	}

	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "merge", "--abort")

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to abort merge: %w", err)
	}

	return nil
}

// CherryPick applies a single commit onto the current branch
func (g *gitClient) CherryPick(ctx context.Context, repoPath, sha string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "cherry-pick", "-x", sha)

	if err := g.runCommand(cmd); err != nil {
		// A pick whose changes are already present stops with an
		// empty-commit diagnostic rather than a conflict
		if isNoChangesError(err) {
			return ErrNoChanges
		}
		return g.classifyIntegrationError(ctx, repoPath, sha, err)
	}

	return nil
}

// CherryPickContinue resumes a conflicted cherry-pick after staging
func (g *gitClient) CherryPickContinue(ctx context.Context, repoPath string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "cherry-pick", "--continue")

	// The continuation commits with the prepared message; suppress the editor
	cmd.Env = append(os.Environ(), "GIT_EDITOR=true")

	if err := g.runCommand(cmd); err != nil {
		if isNoChangesError(err) {
			return ErrNoChanges
		}
		return fmt.Errorf("failed to continue cherry-pick: %w", err)
	}

	return nil
}

// AbortCherryPick cancels an in-flight cherry-pick; a no-op when none is in progress
func (g *gitClient) AbortCherryPick(ctx context.Context, repoPath string) error {
	if _, err := os.Stat(filepath.Join(repoPath, ".git", "CHERRY_PICK_HEAD")); err != nil {
		return nil
	}

	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "cherry-pick", "--abort")

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to abort cherry-pick: %w", err)
	}

	return nil
}

// Add stages files for commit
func (g *gitClient) Add(ctx context.Context, repoPath string, paths ...string) error {
	args := []string{"-C", repoPath, "add"}
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // Arguments are safely constructed

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	return nil
}

// Commit creates a commit with the given message
func (g *gitClient) Commit(ctx context.Context, repoPath, message string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "commit", "-m", message)

	if err := g.runCommand(cmd); err != nil {
		if isNoChangesError(err) {
			return ErrNoChanges
		}
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// Push pushes a branch to the remote
func (g *gitClient) Push(ctx context.Context, repoPath, remote, branch string, force bool) error {
	args := []string{"-C", repoPath, "push", remote, branch}
	if force {
		args = append(args, "--force")
	}

	cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // Arguments are safely constructed

	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := g.runCommand(cmd); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}

	return nil
}

// CommitsBetween returns commits reachable from refB but not refA, oldest first.
// Merge commits are excluded: they carry no replayable change of their own.
func (g *gitClient) CommitsBetween(ctx context.Context, repoPath, refA, refB string) ([]Commit, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "log", "--reverse", "--no-merges",
		"--format=%H%x1f%s", refA+".."+refB) //nolint:gosec // Arguments are safely constructed

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list commits between %s and %s: %w", refA, refB, err)
	}

	return parseCommitLog(output), nil
}

// parseCommitLog parses `git log --format=%H%x1f%s` output into commits
func parseCommitLog(output []byte) []Commit {
	var commits []Commit

	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		sha, subject, found := strings.Cut(line, "\x1f")
		if !found || len(sha) < 7 {
			continue
		}

		commits = append(commits, Commit{SHA: sha, Message: subject})
	}

	return commits
}

// GetCurrentBranch returns the name of the current branch
func (g *gitClient) GetCurrentBranch(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "branch", "--show-current")

	output, err := cmd.Output()
	if err != nil {
		// Try alternative method for older git versions
		cmd = exec.CommandContext(ctx, "git", "-C", repoPath, "symbolic-ref", "--short", "HEAD")

		output, err = cmd.Output()
		if err != nil {
			return "", fmt.Errorf("failed to get current branch: %w", err)
		}
	}

	return strings.TrimSpace(string(output)), nil
}

// classifyIntegrationError turns a failed merge or cherry-pick into
// ErrConflict when the index holds unmerged paths. Classification reads the
// index state instead of matching diagnostic text, so conflict handling does
// not depend on git's message wording. Any other failure stays fatal.
func (g *gitClient) classifyIntegrationError(ctx context.Context, repoPath, ref string, cmdErr error) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "ls-files", "--unmerged")

	output, err := cmd.Output()
	if err == nil && len(bytes.TrimSpace(output)) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrConflict, ref, cmdErr.Error())
	}

	return fmt.Errorf("failed to integrate %s: %w", ref, cmdErr)
}

// isNoChangesError detects git's empty-commit diagnostics. Git signals this
// condition only through message text, so the check lives here and callers
// see the ErrNoChanges sentinel instead.
func isNoChangesError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "nothing to commit") ||
		strings.Contains(errStr, "no changes") ||
		strings.Contains(errStr, "working tree clean") ||
		strings.Contains(errStr, "nothing added to commit") ||
		strings.Contains(errStr, "previous cherry-pick is now empty")
}

// runCommand executes a command and logs the output
func (g *gitClient) runCommand(cmd *exec.Cmd) error {
	if g.logger != nil && g.logger.IsLevelEnabled(logrus.DebugLevel) {
		g.logger.WithField("command", strings.Join(cmd.Args, " ")).Debug("Executing git command")
	}

	var stderr bytes.Buffer
	var stdout bytes.Buffer

	cmd.Stderr = &stderr
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err == nil {
		return nil
	}

	errMsg := stderr.String()
	outMsg := stdout.String()
	if g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"command": strings.Join(cmd.Args, " "),
			"error":   errMsg,
			"output":  outMsg,
		}).Error("Git command failed")
	}

	if strings.Contains(errMsg, "not a git repository") {
		return ErrNotARepository
	}

	// Return error with stderr content (or stdout if stderr is empty)
	if errMsg != "" {
		return fmt.Errorf("%w: %s", ErrGitCommand, errMsg)
	}
	if outMsg != "" {
		return fmt.Errorf("%w: %s", ErrGitCommand, outMsg)
	}
	return err
}
