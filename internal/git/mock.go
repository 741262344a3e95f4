package git

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of the Client interface
type MockClient struct {
	mock.Mock
}

// Clone mock implementation
func (m *MockClient) Clone(ctx context.Context, url, path string) error {
	return m.Called(ctx, url, path).Error(0)
}

// AddRemote mock implementation
func (m *MockClient) AddRemote(ctx context.Context, repoPath, name, url string) error {
	return m.Called(ctx, repoPath, name, url).Error(0)
}

// RemoveRemote mock implementation
func (m *MockClient) RemoveRemote(ctx context.Context, repoPath, name string) error {
	return m.Called(ctx, repoPath, name).Error(0)
}

// Fetch mock implementation
func (m *MockClient) Fetch(ctx context.Context, repoPath, remote, branch string) error {
	return m.Called(ctx, repoPath, remote, branch).Error(0)
}

// Checkout mock implementation
func (m *MockClient) Checkout(ctx context.Context, repoPath, branch string) error {
	return m.Called(ctx, repoPath, branch).Error(0)
}

// CreateBranch mock implementation
func (m *MockClient) CreateBranch(ctx context.Context, repoPath, branch string) error {
	return m.Called(ctx, repoPath, branch).Error(0)
}

// BranchExists mock implementation
func (m *MockClient) BranchExists(ctx context.Context, repoPath, branch string) (bool, error) {
	args := m.Called(ctx, repoPath, branch)
	return args.Bool(0), args.Error(1)
}

// RemoteBranchExists mock implementation
func (m *MockClient) RemoteBranchExists(ctx context.Context, repoPath, remote, branch string) (bool, error) {
	args := m.Called(ctx, repoPath, remote, branch)
	return args.Bool(0), args.Error(1)
}

// Merge mock implementation
func (m *MockClient) Merge(ctx context.Context, repoPath, ref string, allowUnrelated bool) error {
	return m.Called(ctx, repoPath, ref, allowUnrelated).Error(0)
}

// AbortMerge mock implementation
func (m *MockClient) AbortMerge(ctx context.Context, repoPath string) error {
	return m.Called(ctx, repoPath).Error(0)
}

// CherryPick mock implementation
func (m *MockClient) CherryPick(ctx context.Context, repoPath, sha string) error {
	return m.Called(ctx, repoPath, sha).Error(0)
}

// CherryPickContinue mock implementation
func (m *MockClient) CherryPickContinue(ctx context.Context, repoPath string) error {
	return m.Called(ctx, repoPath).Error(0)
}

// AbortCherryPick mock implementation
func (m *MockClient) AbortCherryPick(ctx context.Context, repoPath string) error {
	return m.Called(ctx, repoPath).Error(0)
}

// Add mock implementation
func (m *MockClient) Add(ctx context.Context, repoPath string, paths ...string) error {
	callArgs := []interface{}{ctx, repoPath}
	for _, p := range paths {
		callArgs = append(callArgs, p)
	}
	return m.Called(callArgs...).Error(0)
}

// Commit mock implementation
func (m *MockClient) Commit(ctx context.Context, repoPath, message string) error {
	return m.Called(ctx, repoPath, message).Error(0)
}

// Push mock implementation
func (m *MockClient) Push(ctx context.Context, repoPath, remote, branch string, force bool) error {
	return m.Called(ctx, repoPath, remote, branch, force).Error(0)
}

// CommitsBetween mock implementation
func (m *MockClient) CommitsBetween(ctx context.Context, repoPath, refA, refB string) ([]Commit, error) {
	args := m.Called(ctx, repoPath, refA, refB)

	var commits []Commit
	if args.Get(0) != nil {
		commits = args.Get(0).([]Commit)
	}

	return commits, args.Error(1)
}

// GetCurrentBranch mock implementation
func (m *MockClient) GetCurrentBranch(ctx context.Context, repoPath string) (string, error) {
	args := m.Called(ctx, repoPath)
	return args.String(0), args.Error(1)
}
