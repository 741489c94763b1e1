package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
)

type tagResolver struct {
	git    interfaces.GitClient
	store  interfaces.TagStore
	policy model.VersionPolicy
}

// NewTagResolver creates the tag resolution stage. The policy decides the
// next release name; the build number always increments by one.
func NewTagResolver(git interfaces.GitClient, store interfaces.TagStore, policy model.VersionPolicy) interfaces.TagResolverUseCase {
	return &tagResolver{
		git:    git,
		store:  store,
		policy: policy,
	}
}

// Resolve scans the variant's tag namespace, computes the next record and
// persists it. Persisting is the final step, so a cancelled run leaves the
// previous state intact.
func (uc *tagResolver) Resolve(ctx context.Context, variant model.BuildVariant) (model.TagRecord, error) {
	logger := ctxlog.From(ctx)

	prev, err := uc.store.Load(variant)
	if err != nil {
		return model.TagRecord{}, err
	}

	records, err := variantTags(ctx, uc.git, variant)
	if err != nil {
		return model.TagRecord{}, err
	}

	var next model.TagRecord
	if len(records) == 0 {
		next = model.DefaultTagRecord(variant)
		logger.Info("No prior tag for variant, starting from default",
			"variant", variant.Name,
			"name", next.Name,
		)
	} else {
		last := records[len(records)-1]

		// Two tags claiming the same counter is ambiguous; the tie
		// goes to the most recently created one.
		for _, rec := range records[:len(records)-1] {
			if rec.BuildNumber == last.BuildNumber {
				logger.Warn("Ambiguous tag namespace, using most recent tag",
					"variant", variant.Name,
					"chosen", last.TagName(),
					"conflicting", rec.TagName(),
				)
			}
		}

		name, err := uc.policy.NextName(last)
		if err != nil {
			return model.TagRecord{}, goerr.Wrap(err, "failed to derive next release name",
				goerr.T(types.ErrTagConfig), goerr.V("variant", variant.Name))
		}
		next = model.TagRecord{Name: name, BuildNumber: last.BuildNumber + 1}
	}

	// The persisted counter is the floor: if the tag history is unchanged
	// since the last resolution (no tag pushed yet) or was rewritten below
	// it, the derived number repeats or regresses and must not be reissued.
	if prev != nil && next.BuildNumber <= prev.BuildNumber {
		next.BuildNumber = prev.BuildNumber + 1
	}

	if err := uc.store.Save(variant, next); err != nil {
		return model.TagRecord{}, err
	}

	logger.Info("Resolved release identity",
		"variant", variant.Name,
		"name", next.Name,
		"build_number", next.BuildNumber,
	)

	return next, nil
}

// LastTag returns the persisted record without side effects.
func (uc *tagResolver) LastTag(variant model.BuildVariant) (*model.TagRecord, error) {
	return uc.store.Load(variant)
}
