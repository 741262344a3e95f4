package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommitLog(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []Commit
	}{
		{
			name:     "empty output",
			output:   "",
			expected: nil,
		},
		{
			name:   "single commit",
			output: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2\x1fAdd feature\n",
			expected: []Commit{
				{SHA: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", Message: "Add feature"},
			},
		},
		{
			name: "multiple commits keep order",
			output: "1111111111111111111111111111111111111111\x1ffirst\n" +
				"2222222222222222222222222222222222222222\x1fsecond\n" +
				"3333333333333333333333333333333333333333\x1fthird\n",
			expected: []Commit{
				{SHA: "1111111111111111111111111111111111111111", Message: "first"},
				{SHA: "2222222222222222222222222222222222222222", Message: "second"},
				{SHA: "3333333333333333333333333333333333333333", Message: "third"},
			},
		},
		{
			name:   "subject containing colon and brackets",
			output: "4444444444444444444444444444444444444444\x1ffix(core): handle [edge] case\n",
			expected: []Commit{
				{SHA: "4444444444444444444444444444444444444444", Message: "fix(core): handle [edge] case"},
			},
		},
		{
			name:     "malformed line is skipped",
			output:   "not-a-commit-line\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCommitLog([]byte(tt.output)))
		})
	}
}

func TestIsNoChangesError(t *testing.T) {
	assert.True(t, isNoChangesError(errors.New("nothing to commit, working tree clean")))
	assert.True(t, isNoChangesError(errors.New("The previous cherry-pick is now empty, possibly due to conflict resolution.")))
	assert.False(t, isNoChangesError(errors.New("error: could not apply 1234567")))
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(logrus.New())
	require.NoError(t, err)
	assert.NotNil(t, client)
}

// initTestRepo creates a repository with an initial commit on branch main
func initTestRepo(t *testing.T) string {
	t.Helper()

	ctx := context.Background()
	repoPath := filepath.Join(t.TempDir(), "repo")

	run := func(args ...string) {
		t.Helper()
		cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // Test uses hardcoded command
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init", "-b", "main", repoPath)
	run("-C", repoPath, "config", "user.email", "test@example.com")
	run("-C", repoPath, "config", "user.name", "Test User")

	writeAndCommit(t, repoPath, "README.md", "hello\n", "Initial commit")

	return repoPath
}

// writeAndCommit writes a file and commits it
func writeAndCommit(t *testing.T, repoPath, file, content, message string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, file), []byte(content), 0o600))

	for _, args := range [][]string{
		{"-C", repoPath, "add", file},
		{"-C", repoPath, "commit", "-m", message},
	} {
		cmd := exec.CommandContext(ctx, "git", args...) //nolint:gosec // Test uses hardcoded command
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
}

func TestGitClient_RemoteLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	// Adding a remote twice must be a no-op the second time
	require.NoError(t, client.AddRemote(ctx, repoPath, "source", "https://github.com/org/source.git"))
	require.NoError(t, client.AddRemote(ctx, repoPath, "source", "https://github.com/org/source.git"))

	// Removing it twice must also succeed
	require.NoError(t, client.RemoveRemote(ctx, repoPath, "source"))
	require.NoError(t, client.RemoveRemote(ctx, repoPath, "source"))
}

func TestGitClient_BranchOperations(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	exists, err := client.BranchExists(ctx, repoPath, "sync-branch-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.CreateBranch(ctx, repoPath, "sync-branch-1"))

	exists, err = client.BranchExists(ctx, repoPath, "sync-branch-1")
	require.NoError(t, err)
	assert.True(t, exists)

	branch, err := client.GetCurrentBranch(ctx, repoPath)
	require.NoError(t, err)
	assert.Equal(t, "sync-branch-1", branch)

	require.NoError(t, client.Checkout(ctx, repoPath, "main"))

	branch, err = client.GetCurrentBranch(ctx, repoPath)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestGitClient_CommitsBetween(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	require.NoError(t, client.CreateBranch(ctx, repoPath, "feature"))
	writeAndCommit(t, repoPath, "a.txt", "a\n", "first change")
	writeAndCommit(t, repoPath, "b.txt", "b\n", "second change")
	writeAndCommit(t, repoPath, "c.txt", "c\n", "third change")

	commits, err := client.CommitsBetween(ctx, repoPath, "main", "feature")
	require.NoError(t, err)
	require.Len(t, commits, 3)

	// Oldest first
	assert.Equal(t, "first change", commits[0].Message)
	assert.Equal(t, "second change", commits[1].Message)
	assert.Equal(t, "third change", commits[2].Message)
	for _, c := range commits {
		assert.Len(t, c.SHA, 40)
	}

	// No new commits in the other direction
	commits, err = client.CommitsBetween(ctx, repoPath, "feature", "main")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestGitClient_MergeConflict(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	// Diverge: both branches rewrite README.md
	require.NoError(t, client.CreateBranch(ctx, repoPath, "feature"))
	writeAndCommit(t, repoPath, "README.md", "feature version\n", "feature change")

	require.NoError(t, client.Checkout(ctx, repoPath, "main"))
	writeAndCommit(t, repoPath, "README.md", "main version\n", "main change")

	err = client.Merge(ctx, repoPath, "feature", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	// The conflicted state can be staged and committed, leaving a push-able branch
	require.NoError(t, client.Add(ctx, repoPath, "."))
	require.NoError(t, client.Commit(ctx, repoPath, "Record merge conflicts"))

	branch, err := client.GetCurrentBranch(ctx, repoPath)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestGitClient_AbortMerge(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	// Aborting with no merge in flight is a no-op
	require.NoError(t, client.AbortMerge(ctx, repoPath))

	require.NoError(t, client.CreateBranch(ctx, repoPath, "feature"))
	writeAndCommit(t, repoPath, "README.md", "feature version\n", "feature change")
	require.NoError(t, client.Checkout(ctx, repoPath, "main"))
	writeAndCommit(t, repoPath, "README.md", "main version\n", "main change")

	err = client.Merge(ctx, repoPath, "feature", false)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, client.AbortMerge(ctx, repoPath))

	// After abort a clean merge target state is restored
	content, err := os.ReadFile(filepath.Join(repoPath, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "main version\n", string(content))
}

func TestGitClient_CherryPick(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	require.NoError(t, client.CreateBranch(ctx, repoPath, "feature"))
	writeAndCommit(t, repoPath, "feature.txt", "feature\n", "add feature file")

	commits, err := client.CommitsBetween(ctx, repoPath, "main", "feature")
	require.NoError(t, err)
	require.Len(t, commits, 1)

	require.NoError(t, client.Checkout(ctx, repoPath, "main"))
	require.NoError(t, client.CreateBranch(ctx, repoPath, "sync"))

	require.NoError(t, client.CherryPick(ctx, repoPath, commits[0].SHA))
	assert.FileExists(t, filepath.Join(repoPath, "feature.txt"))
}

func TestGitClient_CherryPickConflictContinue(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	require.NoError(t, client.CreateBranch(ctx, repoPath, "feature"))
	writeAndCommit(t, repoPath, "README.md", "feature version\n", "conflicting change")

	commits, err := client.CommitsBetween(ctx, repoPath, "main", "feature")
	require.NoError(t, err)
	require.Len(t, commits, 1)

	require.NoError(t, client.Checkout(ctx, repoPath, "main"))
	writeAndCommit(t, repoPath, "README.md", "main version\n", "diverging change")

	err = client.CherryPick(ctx, repoPath, commits[0].SHA)
	require.ErrorIs(t, err, ErrConflict)

	// Stage everything, conflict markers included, then continue
	require.NoError(t, client.Add(ctx, repoPath, "."))
	require.NoError(t, client.CherryPickContinue(ctx, repoPath))

	branch, err := client.GetCurrentBranch(ctx, repoPath)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestGitClient_CommitNoChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)

	err = client.Commit(ctx, repoPath, "empty commit")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestGitClient_Clone_AlreadyExists(t *testing.T) {
	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	path := t.TempDir()

	err = client.Clone(ctx, "https://github.com/org/repo.git", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRepositoryExists)
}

func TestGitClient_FetchMissingBranch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client, err := NewClient(logrus.New())
	require.NoError(t, err)

	ctx := context.Background()
	repoPath := initTestRepo(t)
	otherPath := initTestRepo(t)

	require.NoError(t, client.AddRemote(ctx, repoPath, "source", otherPath))

	err = client.Fetch(ctx, repoPath, "source", "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBranchNotFound)

	require.NoError(t, client.Fetch(ctx, repoPath, "source", "main"))
}
