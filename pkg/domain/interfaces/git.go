package interfaces

import (
	"context"

	"github.com/dimsuz/build-publish/pkg/domain/model"
)

// GitClient defines the version-control history access the pipeline needs.
type GitClient interface {
	// TagNames returns all tag names in the repository, ordered oldest
	// first by creation.
	TagNames(ctx context.Context) ([]string, error)

	// CommitsSinceTag returns the commits after tagName up to HEAD,
	// oldest first, excluding merge commits. An empty tagName means the
	// full history.
	CommitsSinceTag(ctx context.Context, tagName string) ([]model.Commit, error)
}
