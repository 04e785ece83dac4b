package core

import "context"

// GitTagOperations covers the tag namespace of the repository.
type GitTagOperations interface {
	ListTags(ctx context.Context) ([]string, error)
	CreateLightweightTag(ctx context.Context, name string) error
	CreateAnnotatedTag(ctx context.Context, name, message string) error
	PushTag(ctx context.Context, name string) error
}

// GitCommitOperations covers committing the working tree.
type GitCommitOperations interface {
	CommitAll(ctx context.Context, message string) error
}

// GitSyncOperations covers the remote and working tree state checks.
type GitSyncOperations interface {
	Status(ctx context.Context) error
	Fetch(ctx context.Context) error
	EnsureNotBehind(ctx context.Context) error
	Checkout(ctx context.Context, ref string) error
	Push(ctx context.Context) error
}
