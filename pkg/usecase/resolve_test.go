package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/usecase"
)

func TestTagResolver_Resolve_NoPriorTag(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	store := newMockTagStore()

	resolver := usecase.NewTagResolver(&mockGitClient{}, store, model.CarryPolicy{})

	tag, err := resolver.Resolve(ctx, variant)

	gt.NoError(t, err)
	gt.Value(t, tag.Name).Equal("v0.0.1-internal")
	gt.Value(t, tag.BuildNumber).Equal(1)
	gt.Value(t, store.saveCalls).Equal(1)

	persisted, err := store.Load(variant)
	gt.NoError(t, err)
	gt.Value(t, *persisted).Equal(tag)
}

func TestTagResolver_Resolve_IncrementsLastTag(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	git := &mockGitClient{
		tagNames: []string{"v1.0.0-internal.1", "v1.0.0-internal.2", "v1.1.0-internal.3"},
	}

	resolver := usecase.NewTagResolver(git, newMockTagStore(), model.CarryPolicy{})

	tag, err := resolver.Resolve(ctx, variant)

	gt.NoError(t, err)
	gt.Value(t, tag.Name).Equal("v1.1.0-internal")
	gt.Value(t, tag.BuildNumber).Equal(4)
}

func TestTagResolver_Resolve_SequenceIncreasesByOne(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "release"}
	git := &mockGitClient{}
	store := newMockTagStore()

	resolver := usecase.NewTagResolver(git, store, model.CarryPolicy{})

	// Simulate N release cycles: each resolution is followed by CI
	// pushing the corresponding tag.
	prev := 0
	for i := 0; i < 5; i++ {
		tag, err := resolver.Resolve(ctx, variant)
		gt.NoError(t, err)
		gt.Value(t, tag.BuildNumber).Equal(prev + 1)
		prev = tag.BuildNumber
		git.tagNames = append(git.tagNames, tag.TagName())
	}
}

func TestTagResolver_Resolve_UnchangedHistoryStillIncrements(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	store := newMockTagStore()

	// No tag is pushed between resolutions; the persisted counter alone
	// must keep the sequence strictly increasing.
	resolver := usecase.NewTagResolver(&mockGitClient{}, store, model.CarryPolicy{})

	first, err := resolver.Resolve(ctx, variant)
	gt.NoError(t, err)
	gt.Value(t, first.BuildNumber).Equal(1)

	second, err := resolver.Resolve(ctx, variant)
	gt.NoError(t, err)
	gt.Value(t, second.BuildNumber).Equal(2)

	// Same for a non-empty but stale tag namespace.
	git := &mockGitClient{tagNames: []string{"v1.0.0-internal.2"}}
	resolver = usecase.NewTagResolver(git, store, model.CarryPolicy{})

	third, err := resolver.Resolve(ctx, variant)
	gt.NoError(t, err)
	gt.Value(t, third.BuildNumber).Equal(3)

	fourth, err := resolver.Resolve(ctx, variant)
	gt.NoError(t, err)
	gt.Value(t, fourth.BuildNumber).Equal(4)
}

func TestTagResolver_Resolve_SkipsForeignAndCorruptTags(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	git := &mockGitClient{
		tagNames: []string{
			"v1.0.0-release.7", // other variant
			"v1.0.0-internal",  // no counter
			"v1.0.0-internal.x",
			"v1.0.0-internal.2",
		},
	}

	resolver := usecase.NewTagResolver(git, newMockTagStore(), model.CarryPolicy{})

	tag, err := resolver.Resolve(ctx, variant)

	gt.NoError(t, err)
	gt.Value(t, tag.Name).Equal("v1.0.0-internal")
	gt.Value(t, tag.BuildNumber).Equal(3)
}

func TestTagResolver_Resolve_AmbiguousTagsUseMostRecent(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	git := &mockGitClient{
		// Two tags claim counter 5; the later one by creation order wins.
		tagNames: []string{"v1.0.0-internal.5", "v1.1.0-internal.5"},
	}

	resolver := usecase.NewTagResolver(git, newMockTagStore(), model.CarryPolicy{})

	tag, err := resolver.Resolve(ctx, variant)

	gt.NoError(t, err)
	gt.Value(t, tag.Name).Equal("v1.1.0-internal")
	gt.Value(t, tag.BuildNumber).Equal(6)
}

func TestTagResolver_Resolve_PatchPolicyBumpsName(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	git := &mockGitClient{tagNames: []string{"v1.2.3-internal.10"}}

	resolver := usecase.NewTagResolver(git, newMockTagStore(), model.PatchPolicy{})

	tag, err := resolver.Resolve(ctx, variant)

	gt.NoError(t, err)
	gt.Value(t, tag.Name).Equal("v1.2.4-internal")
	gt.Value(t, tag.BuildNumber).Equal(11)
}

func TestTagResolver_Resolve_NeverDecreasesBelowPersisted(t *testing.T) {
	ctx := context.Background()
	variant := model.BuildVariant{Name: "internal"}
	store := newMockTagStore()
	store.records[variant.Name] = model.TagRecord{Name: "v1.0.0-internal", BuildNumber: 9}

	// Tag history was rewritten and only shows counter 3.
	git := &mockGitClient{tagNames: []string{"v1.0.0-internal.3"}}

	resolver := usecase.NewTagResolver(git, store, model.CarryPolicy{})

	tag, err := resolver.Resolve(ctx, variant)

	gt.NoError(t, err)
	gt.Value(t, tag.BuildNumber).Equal(10)
}

func TestTagResolver_Resolve_CorruptStateIsFatal(t *testing.T) {
	ctx := context.Background()
	store := newMockTagStore()
	store.loadErr = errUnreachable

	resolver := usecase.NewTagResolver(&mockGitClient{}, store, model.CarryPolicy{})

	_, err := resolver.Resolve(ctx, model.BuildVariant{Name: "internal"})

	gt.Error(t, err)
	gt.Value(t, store.saveCalls).Equal(0)
}

func TestTagResolver_Resolve_HistoryFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	git := &mockGitClient{tagNamesErr: errUnreachable}
	store := newMockTagStore()

	resolver := usecase.NewTagResolver(git, store, model.CarryPolicy{})

	_, err := resolver.Resolve(ctx, model.BuildVariant{Name: "internal"})

	gt.Error(t, err)
	gt.Value(t, store.saveCalls).Equal(0)
}

func TestTagResolver_LastTag_DoesNotMutate(t *testing.T) {
	variant := model.BuildVariant{Name: "internal"}
	store := newMockTagStore()
	store.records[variant.Name] = model.TagRecord{Name: "v1.0.0-internal", BuildNumber: 5}

	resolver := usecase.NewTagResolver(&mockGitClient{}, store, model.CarryPolicy{})

	tag, err := resolver.LastTag(variant)

	gt.NoError(t, err)
	gt.Value(t, tag.BuildNumber).Equal(5)
	gt.Value(t, store.saveCalls).Equal(0)
}
