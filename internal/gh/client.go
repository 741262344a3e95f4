package gh

import "context"

// Client defines the interface for GitHub operations
type Client interface {
	// ListPRs lists open pull requests for a repository, optionally
	// filtered by head and base branch. The head filter uses the bare
	// branch name; the owner qualifier is added internally.
	ListPRs(ctx context.Context, repo, head, base string) ([]PR, error)

	// CreatePR creates a new pull request
	CreatePR(ctx context.Context, repo string, req PRRequest) (*PR, error)

	// UpdatePR updates an existing pull request
	UpdatePR(ctx context.Context, repo string, number int, updates PRUpdate) error

	// GetPR retrieves a pull request by number
	GetPR(ctx context.Context, repo string, number int) (*PR, error)

	// GetBranch returns details for a specific branch
	GetBranch(ctx context.Context, repo, branch string) (*Branch, error)
}
