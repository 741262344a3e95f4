package sync

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lsfreitas/repo-sync/internal/config"
	"github.com/lsfreitas/repo-sync/internal/git"
	"github.com/lsfreitas/repo-sync/internal/logging"
)

// testLogger returns a logger that swallows output
func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testLogConfig() *logging.LogConfig {
	return &logging.LogConfig{CorrelationID: "test-correlation"}
}

func testCommits() []git.Commit {
	return []git.Commit{
		{SHA: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Message: "first change"},
		{SHA: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", Message: "second change"},
	}
}

func TestNewIntegrator(t *testing.T) {
	g := &git.MockClient{}

	merge, err := NewIntegrator(config.StrategyMerge, g, testLogger(), testLogConfig())
	require.NoError(t, err)
	assert.Equal(t, "merge", merge.Name())

	replay, err := NewIntegrator(config.StrategyReplay, g, testLogger(), testLogConfig())
	require.NoError(t, err)
	assert.Equal(t, "replay", replay.Name())

	_, err = NewIntegrator("rebase", g, testLogger(), testLogConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown integration strategy")
}

func TestMergeIntegrator(t *testing.T) {
	ctx := context.Background()
	repoPath := "/tmp/work/repo"
	sourceRef := "source/main"

	t.Run("clean merge", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("Merge", ctx, repoPath, sourceRef, true).Return(nil)

		m := &mergeIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		result, err := m.Integrate(ctx, repoPath, sourceRef, testCommits())
		require.NoError(t, err)

		assert.Equal(t, 2, result.Applied)
		assert.False(t, result.Conflicted)
		g.AssertExpectations(t)
		g.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("conflicted merge commits staged state", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("Merge", ctx, repoPath, sourceRef, true).Return(git.ErrConflict)
		g.On("Add", ctx, repoPath, ".").Return(nil)
		g.On("Commit", ctx, repoPath, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "conflicts")
		})).Return(nil)

		m := &mergeIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		result, err := m.Integrate(ctx, repoPath, sourceRef, testCommits())
		require.NoError(t, err)

		assert.True(t, result.Conflicted)
		assert.Equal(t, 2, result.Applied)
		g.AssertExpectations(t)
	})

	t.Run("non-conflict failure is fatal", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("Merge", ctx, repoPath, sourceRef, true).Return(git.ErrGitCommand)

		m := &mergeIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		_, err := m.Integrate(ctx, repoPath, sourceRef, testCommits())
		require.ErrorIs(t, err, git.ErrGitCommand)
		g.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReplayIntegrator(t *testing.T) {
	ctx := context.Background()
	repoPath := "/tmp/work/repo"
	commits := testCommits()

	t.Run("clean replay applies every commit in order", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("CherryPick", ctx, repoPath, commits[0].SHA).Return(nil)
		g.On("CherryPick", ctx, repoPath, commits[1].SHA).Return(nil)

		r := &replayIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		result, err := r.Integrate(ctx, repoPath, "source/main", commits)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Applied)
		assert.Zero(t, result.Skipped)
		assert.False(t, result.Conflicted)
		g.AssertExpectations(t)
	})

	t.Run("already applied commit is skipped", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("CherryPick", ctx, repoPath, commits[0].SHA).Return(git.ErrNoChanges)
		g.On("AbortCherryPick", ctx, repoPath).Return(nil)
		g.On("CherryPick", ctx, repoPath, commits[1].SHA).Return(nil)

		r := &replayIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		result, err := r.Integrate(ctx, repoPath, "source/main", commits)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Applied)
		assert.Equal(t, 1, result.Skipped)
		assert.False(t, result.Conflicted)
		g.AssertExpectations(t)
	})

	t.Run("conflicted pick is staged and continued", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("CherryPick", ctx, repoPath, commits[0].SHA).Return(git.ErrConflict)
		g.On("Add", ctx, repoPath, ".").Return(nil)
		g.On("CherryPickContinue", ctx, repoPath).Return(nil)
		g.On("CherryPick", ctx, repoPath, commits[1].SHA).Return(nil)

		r := &replayIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		result, err := r.Integrate(ctx, repoPath, "source/main", commits)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Applied)
		assert.True(t, result.Conflicted)
		assert.Equal(t, []string{commits[0].SHA}, result.ConflictedSHAs)
		g.AssertExpectations(t)
	})

	t.Run("conflicted pick resolving empty is skipped", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("CherryPick", ctx, repoPath, commits[0].SHA).Return(git.ErrConflict)
		g.On("Add", ctx, repoPath, ".").Return(nil)
		g.On("CherryPickContinue", ctx, repoPath).Return(git.ErrNoChanges)
		g.On("AbortCherryPick", ctx, repoPath).Return(nil)
		g.On("CherryPick", ctx, repoPath, commits[1].SHA).Return(nil)

		r := &replayIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		result, err := r.Integrate(ctx, repoPath, "source/main", commits)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Applied)
		assert.Equal(t, 1, result.Skipped)
		assert.False(t, result.Conflicted)
		assert.Empty(t, result.ConflictedSHAs)
		g.AssertExpectations(t)
	})

	t.Run("non-conflict pick failure stops the replay", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("CherryPick", ctx, repoPath, commits[0].SHA).Return(git.ErrGitCommand)

		r := &replayIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		_, err := r.Integrate(ctx, repoPath, "source/main", commits)
		require.ErrorIs(t, err, git.ErrGitCommand)
		g.AssertNotCalled(t, "CherryPick", ctx, repoPath, commits[1].SHA)
	})

	t.Run("failed continue stops the replay", func(t *testing.T) {
		g := &git.MockClient{}
		g.On("CherryPick", ctx, repoPath, commits[0].SHA).Return(git.ErrConflict)
		g.On("Add", ctx, repoPath, ".").Return(nil)
		g.On("CherryPickContinue", ctx, repoPath).Return(git.ErrGitCommand)

		r := &replayIntegrator{git: g, logger: testLogger(), logConfig: testLogConfig()}
		_, err := r.Integrate(ctx, repoPath, "source/main", commits)
		require.ErrorIs(t, err, git.ErrGitCommand)
	})
}
