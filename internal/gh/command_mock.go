package gh

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing
type MockCommandRunner struct {
	mock.Mock
}

// Run mock implementation
func (m *MockCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	callArgs := []interface{}{ctx, name}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	called := m.Called(callArgs...)

	var output []byte
	if called.Get(0) != nil {
		output = called.Get(0).([]byte)
	}

	return output, called.Error(1)
}

// RunWithInput mock implementation
func (m *MockCommandRunner) RunWithInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	callArgs := []interface{}{ctx, input, name}
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	called := m.Called(callArgs...)

	var output []byte
	if called.Get(0) != nil {
		output = called.Get(0).([]byte)
	}

	return output, called.Error(1)
}
