package interfaces

import (
	"context"

	"github.com/dimsuz/build-publish/pkg/domain/model"
)

// TagResolverUseCase computes and persists the release identity of a
// variant from its tag history.
type TagResolverUseCase interface {
	// Resolve determines the next TagRecord for the variant and persists
	// it as its final step.
	Resolve(ctx context.Context, variant model.BuildVariant) (model.TagRecord, error)

	// LastTag returns the currently persisted record without mutating
	// anything. Returns (nil, nil) when no record exists yet.
	LastTag(variant model.BuildVariant) (*model.TagRecord, error)
}

// ChangelogUseCase builds the changelog artifact for the range between the
// previous tag and HEAD.
type ChangelogUseCase interface {
	Build(ctx context.Context, variant model.BuildVariant, tag model.TagRecord) (model.Changelog, error)

	// Write serializes the changelog to path with truncate-and-rewrite
	// semantics.
	Write(changelog model.Changelog, path string) error
}

// DispatchUseCase delivers the changelog payload to every configured
// target, isolating per-target failures.
type DispatchUseCase interface {
	Dispatch(ctx context.Context, payload model.Payload) model.DeliverySummary
}
