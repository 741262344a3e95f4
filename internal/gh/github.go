package gh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	appErrors "github.com/lsfreitas/repo-sync/internal/errors"
	"github.com/lsfreitas/repo-sync/internal/logging"
)

// Common errors
var (
	ErrNotAuthenticated   = errors.New("gh CLI not authenticated")
	ErrGHNotFound         = errors.New("gh CLI not found in PATH")
	ErrBranchNotFound     = errors.New("branch not found")
	ErrPRNotFound         = errors.New("pull request not found")
	ErrPRValidationFailed = errors.New("PR validation failed - identical head/base or no diff between branches")
)

// githubClient implements the Client interface using gh CLI
type githubClient struct {
	runner CommandRunner
	logger *logrus.Logger
}

// NewClient creates a new GitHub client using the gh CLI.
//
// When token is non-empty it is used for every API call via GH_TOKEN;
// otherwise the gh CLI's stored credential applies. The authentication
// check runs once at construction so failures surface before any
// repository work begins.
func NewClient(ctx context.Context, logger *logrus.Logger, logConfig *logging.LogConfig, token string) (Client, error) {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil, ErrGHNotFound
	}

	runner := NewCommandRunner(logger, logConfig, token)

	if _, err := runner.Run(ctx, "gh", "auth", "status"); err != nil {
		return nil, fmt.Errorf("%w: gh auth status failed", ErrNotAuthenticated)
	}

	return &githubClient{
		runner: runner,
		logger: logger,
	}, nil
}

// NewClientWithRunner creates a GitHub client with a custom command runner (for testing)
func NewClientWithRunner(runner CommandRunner, logger *logrus.Logger) Client {
	return &githubClient{
		runner: runner,
		logger: logger,
	}
}

// ListPRs lists open pull requests, optionally filtered by head and base branch
func (g *githubClient) ListPRs(ctx context.Context, repo, head, base string) ([]PR, error) {
	query := url.Values{}
	query.Set("state", "open")

	if head != "" {
		owner, _, err := splitRepo(repo)
		if err != nil {
			return nil, err
		}
		// The REST filter requires the owner-qualified form
		query.Set("head", owner+":"+head)
	}
	if base != "" {
		query.Set("base", base)
	}

	apiURL := fmt.Sprintf("repos/%s/pulls?%s", repo, query.Encode())

	output, err := g.runner.Run(ctx, "gh", "api", apiURL, "--paginate")
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "list PRs")
	}

	prs, err := unmarshalJSON[[]PR](output)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse PRs")
	}

	return prs, nil
}

// CreatePR creates a new pull request
func (g *githubClient) CreatePR(ctx context.Context, repo string, req PRRequest) (*PR, error) {
	owner, _, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	// Format head branch with owner prefix for cross-repository PRs
	headRef := req.Head
	if !strings.Contains(headRef, ":") {
		headRef = fmt.Sprintf("%s:%s", owner, req.Head)
	}

	prData := map[string]interface{}{
		"title": req.Title,
		"body":  req.Body,
		"head":  headRef,
		"base":  req.Base,
		"draft": req.Draft,
	}

	jsonData, err := json.Marshal(prData)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "marshal PR data")
	}

	output, err := g.runner.RunWithInput(ctx, jsonData, "gh", "api", fmt.Sprintf("repos/%s/pulls", repo), "--method", "POST", "--input", "-")
	if err != nil {
		// Validation failures (HTTP 422) commonly mean identical head/base,
		// no diff between the branches, or a PR that already exists
		if isValidationFailedError(err) {
			return nil, appErrors.WrapWithContext(ErrPRValidationFailed, fmt.Sprintf("failed to create PR with head '%s' and base '%s': %v", headRef, req.Base, err))
		}

		return nil, appErrors.WrapWithContext(fmt.Errorf("failed to create PR with head '%s' and base '%s': %w", headRef, req.Base, err), "create PR")
	}

	pr, err := unmarshalJSON[PR](output)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse PR response")
	}

	return &pr, nil
}

// UpdatePR updates a pull request
func (g *githubClient) UpdatePR(ctx context.Context, repo string, number int, updates PRUpdate) error {
	jsonData, err := json.Marshal(updates)
	if err != nil {
		return appErrors.WrapWithContext(err, "marshal PR update")
	}

	_, err = g.runner.RunWithInput(ctx, jsonData, "gh", "api", fmt.Sprintf("repos/%s/pulls/%d", repo, number), "--method", "PATCH", "--input", "-")
	if err != nil {
		if isNotFoundError(err) {
			return ErrPRNotFound
		}
		return appErrors.WrapWithContext(err, "update PR")
	}

	return nil
}

// GetPR retrieves a pull request by number
func (g *githubClient) GetPR(ctx context.Context, repo string, number int) (*PR, error) {
	output, err := g.runner.Run(ctx, "gh", "api", fmt.Sprintf("repos/%s/pulls/%d", repo, number))
	if err != nil {
		if isNotFoundError(err) {
			return nil, ErrPRNotFound
		}
		return nil, appErrors.WrapWithContext(err, "get PR")
	}

	pr, err := unmarshalJSON[PR](output)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse PR")
	}

	return &pr, nil
}

// GetBranch returns details for a specific branch
func (g *githubClient) GetBranch(ctx context.Context, repo, branch string) (*Branch, error) {
	output, err := g.runner.Run(ctx, "gh", "api", fmt.Sprintf("repos/%s/branches/%s", repo, branch))
	if err != nil {
		if isNotFoundError(err) {
			return nil, ErrBranchNotFound
		}
		return nil, appErrors.WrapWithContext(err, "get branch")
	}

	b, err := unmarshalJSON[Branch](output)
	if err != nil {
		return nil, appErrors.WrapWithContext(err, "parse branch")
	}

	return &b, nil
}

// splitRepo splits an owner/name repository identifier
func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", appErrors.FormatError("repository", repo, "owner/repo")
	}
	return parts[0], parts[1], nil
}

// unmarshalJSON decodes gh CLI output into the requested type
func unmarshalJSON[T any](data []byte) (T, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return value, nil
}

// isNotFoundError checks if the error is a 404 from GitHub API
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "404") ||
		strings.Contains(errStr, "Not Found") ||
		strings.Contains(errStr, "could not resolve")
}

// isValidationFailedError checks if the error is a 422 (validation failed) from GitHub API
func isValidationFailedError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "422") ||
		strings.Contains(errStr, "Validation Failed") ||
		strings.Contains(errStr, "Unprocessable Entity")
}
