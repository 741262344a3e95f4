package gh

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

// ListPRs mock implementation
func (m *MockClient) ListPRs(ctx context.Context, repo, head, base string) ([]PR, error) {
	args := m.Called(ctx, repo, head, base)

	var prs []PR
	if args.Get(0) != nil {
		prs = args.Get(0).([]PR)
	}

	return prs, args.Error(1)
}

// CreatePR mock implementation
func (m *MockClient) CreatePR(ctx context.Context, repo string, req PRRequest) (*PR, error) {
	args := m.Called(ctx, repo, req)

	var pr *PR
	if args.Get(0) != nil {
		pr = args.Get(0).(*PR)
	}

	return pr, args.Error(1)
}

// UpdatePR mock implementation
func (m *MockClient) UpdatePR(ctx context.Context, repo string, number int, updates PRUpdate) error {
	return m.Called(ctx, repo, number, updates).Error(0)
}

// GetPR mock implementation
func (m *MockClient) GetPR(ctx context.Context, repo string, number int) (*PR, error) {
	args := m.Called(ctx, repo, number)

	var pr *PR
	if args.Get(0) != nil {
		pr = args.Get(0).(*PR)
	}

	return pr, args.Error(1)
}

// GetBranch mock implementation
func (m *MockClient) GetBranch(ctx context.Context, repo, branch string) (*Branch, error) {
	args := m.Called(ctx, repo, branch)

	var b *Branch
	if args.Get(0) != nil {
		b = args.Get(0).(*Branch)
	}

	return b, args.Error(1)
}
