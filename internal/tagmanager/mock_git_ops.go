package tagmanager

import (
	"context"

	"github.com/indaco/cutrelease/internal/core"
)

// MockGitTagOperations is a mock implementation of core.GitTagOperations for testing.
type MockGitTagOperations struct {
	ListTagsFn             func() ([]string, error)
	CreateLightweightTagFn func(name string) error
	CreateAnnotatedTagFn   func(name, message string) error
	PushTagFn              func(name string) error
}

var _ core.GitTagOperations = (*MockGitTagOperations)(nil)

// ListTags implements core.GitTagOperations.
func (m *MockGitTagOperations) ListTags(context.Context) ([]string, error) {
	if m.ListTagsFn != nil {
		return m.ListTagsFn()
	}
	return []string{}, nil
}

// CreateLightweightTag implements core.GitTagOperations.
func (m *MockGitTagOperations) CreateLightweightTag(_ context.Context, name string) error {
	if m.CreateLightweightTagFn != nil {
		return m.CreateLightweightTagFn(name)
	}
	return nil
}

// CreateAnnotatedTag implements core.GitTagOperations.
func (m *MockGitTagOperations) CreateAnnotatedTag(_ context.Context, name, message string) error {
	if m.CreateAnnotatedTagFn != nil {
		return m.CreateAnnotatedTagFn(name, message)
	}
	return nil
}

// PushTag implements core.GitTagOperations.
func (m *MockGitTagOperations) PushTag(_ context.Context, name string) error {
	if m.PushTagFn != nil {
		return m.PushTagFn(name)
	}
	return nil
}
