package gh

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appErrors "github.com/lsfreitas/repo-sync/internal/errors"
)

func TestListPRs_FiltersByHeadAndBase(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	prJSON := `[{"number": 12, "state": "open", "title": "Sync sync-branch into main",
		"draft": true, "head": {"ref": "sync-branch"}, "base": {"ref": "main"}}]`

	runner.On("Run", mock.Anything, "gh", "api",
		"repos/org/repo/pulls?base=main&head=org%3Async-branch&state=open", "--paginate").
		Return([]byte(prJSON), nil)

	prs, err := client.ListPRs(context.Background(), "org/repo", "sync-branch", "main")
	require.NoError(t, err)
	require.Len(t, prs, 1)

	assert.Equal(t, 12, prs[0].Number)
	assert.True(t, prs[0].Draft)
	assert.Equal(t, "sync-branch", prs[0].Head.Ref)
	assert.Equal(t, "main", prs[0].Base.Ref)

	runner.AssertExpectations(t)
}

func TestListPRs_NoFilters(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	runner.On("Run", mock.Anything, "gh", "api", "repos/org/repo/pulls?state=open", "--paginate").
		Return([]byte("[]"), nil)

	prs, err := client.ListPRs(context.Background(), "org/repo", "", "")
	require.NoError(t, err)
	assert.Empty(t, prs)
}

func TestListPRs_InvalidRepo(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	_, err := client.ListPRs(context.Background(), "no-slash", "head", "base")
	require.Error(t, err)

	runner.AssertNotCalled(t, "Run")
}

func TestCreatePR_SendsDraftFlag(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	response := `{"number": 7, "state": "open", "draft": true, "html_url": "https://github.com/org/repo/pull/7",
		"head": {"ref": "sync-branch"}, "base": {"ref": "main"}}`

	runner.On("RunWithInput", mock.Anything, mock.MatchedBy(func(input []byte) bool {
		var payload map[string]interface{}
		if err := json.Unmarshal(input, &payload); err != nil {
			return false
		}
		return payload["draft"] == true && payload["head"] == "org:sync-branch" && payload["base"] == "main"
	}), "gh", "api", "repos/org/repo/pulls", "--method", "POST", "--input", "-").
		Return([]byte(response), nil)

	pr, err := client.CreatePR(context.Background(), "org/repo", PRRequest{
		Title: "Sync sync-branch into main",
		Body:  "- commits",
		Head:  "sync-branch",
		Base:  "main",
		Draft: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, pr.Number)
	assert.True(t, pr.Draft)
	assert.Equal(t, "https://github.com/org/repo/pull/7", pr.HTMLURL)

	runner.AssertExpectations(t)
}

func TestCreatePR_ValidationFailure(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	cmdErr := &CommandError{
		Command: "gh",
		Stderr:  "HTTP 422: Validation Failed",
		Err:     appErrors.ErrTest,
	}

	runner.On("RunWithInput", mock.Anything, mock.Anything, "gh", "api", "repos/org/repo/pulls",
		"--method", "POST", "--input", "-").
		Return(nil, cmdErr)

	_, err := client.CreatePR(context.Background(), "org/repo", PRRequest{
		Head: "main",
		Base: "main",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPRValidationFailed)
}

func TestUpdatePR_PatchesBody(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	body := "- [1234567](https://github.com/org/src/commit/1234567890): refresh"

	runner.On("RunWithInput", mock.Anything, mock.MatchedBy(func(input []byte) bool {
		var payload map[string]interface{}
		if err := json.Unmarshal(input, &payload); err != nil {
			return false
		}
		_, hasTitle := payload["title"]
		return payload["body"] == body && !hasTitle
	}), "gh", "api", "repos/org/repo/pulls/12", "--method", "PATCH", "--input", "-").
		Return([]byte("{}"), nil)

	err := client.UpdatePR(context.Background(), "org/repo", 12, PRUpdate{Body: &body})
	require.NoError(t, err)

	runner.AssertExpectations(t)
}

func TestUpdatePR_NotFound(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	cmdErr := &CommandError{
		Command: "gh",
		Stderr:  "HTTP 404: Not Found",
		Err:     appErrors.ErrTest,
	}

	runner.On("RunWithInput", mock.Anything, mock.Anything, "gh", "api", "repos/org/repo/pulls/99",
		"--method", "PATCH", "--input", "-").
		Return(nil, cmdErr)

	body := "body"
	err := client.UpdatePR(context.Background(), "org/repo", 99, PRUpdate{Body: &body})
	assert.ErrorIs(t, err, ErrPRNotFound)
}

func TestGetPR(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	runner.On("Run", mock.Anything, "gh", "api", "repos/org/repo/pulls/3").
		Return([]byte(`{"number": 3, "state": "open", "title": "t"}`), nil)

	pr, err := client.GetPR(context.Background(), "org/repo", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, pr.Number)
}

func TestGetBranch_NotFound(t *testing.T) {
	runner := &MockCommandRunner{}
	client := NewClientWithRunner(runner, logrus.New())

	cmdErr := &CommandError{
		Command: "gh",
		Stderr:  "HTTP 404: Not Found",
		Err:     appErrors.ErrTest,
	}

	runner.On("Run", mock.Anything, "gh", "api", "repos/org/repo/branches/missing").
		Return(nil, cmdErr)

	_, err := client.GetBranch(context.Background(), "org/repo", "missing")
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestSplitRepo(t *testing.T) {
	owner, name, err := splitRepo("org/repo")
	require.NoError(t, err)
	assert.Equal(t, "org", owner)
	assert.Equal(t, "repo", name)

	_, _, err = splitRepo("org/repo/extra")
	require.Error(t, err)

	_, _, err = splitRepo("/repo")
	require.Error(t, err)
}

func TestCommandError(t *testing.T) {
	err := &CommandError{
		Command: "gh",
		Args:    []string{"api", "repos/org/repo/pulls"},
		Stderr:  "HTTP 403: rate limited",
		Err:     appErrors.ErrTest,
	}

	assert.Equal(t, "HTTP 403: rate limited", err.Error())
	assert.ErrorIs(t, err, appErrors.ErrTest)
}
