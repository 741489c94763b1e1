package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
	"github.com/dimsuz/build-publish/pkg/utils/async"
)

// Pipeline sequences the release stages for each variant: resolve the next
// tag, persist it, build the changelog artifact, dispatch notifications.
// Each stage consumes the previous stage's output explicitly.
type Pipeline struct {
	resolver       interfaces.TagResolverUseCase
	builder        interfaces.ChangelogUseCase
	dispatcher     interfaces.DispatchUseCase
	outDir         string
	baseOutputName string
}

func NewPipeline(
	resolver interfaces.TagResolverUseCase,
	builder interfaces.ChangelogUseCase,
	dispatcher interfaces.DispatchUseCase,
	outDir string,
	baseOutputName string,
) *Pipeline {
	return &Pipeline{
		resolver:       resolver,
		builder:        builder,
		dispatcher:     dispatcher,
		outDir:         outDir,
		baseOutputName: baseOutputName,
	}
}

// ChangelogPath is the variant-scoped artifact path convention shared by
// the pipeline and the single-stage commands.
func ChangelogPath(outDir string, variant model.BuildVariant) string {
	return filepath.Join(outDir, fmt.Sprintf("changelog-%s.txt", variant.Name))
}

// RunVariant executes the full pipeline for one variant. Delivery failures
// are partial: the resolved tag and the changelog artifact stand, and the
// returned error lists the targets that did not receive the payload.
func (p *Pipeline) RunVariant(ctx context.Context, variant model.BuildVariant) (model.TagRecord, error) {
	logger := ctxlog.From(ctx)

	tag, err := p.resolver.Resolve(ctx, variant)
	if err != nil {
		return model.TagRecord{}, err
	}

	changelog, err := p.builder.Build(ctx, variant, tag)
	if err != nil {
		return model.TagRecord{}, err
	}

	path := ChangelogPath(p.outDir, variant)
	if err := p.builder.Write(changelog, path); err != nil {
		return model.TagRecord{}, err
	}

	logger.Info("Wrote changelog artifact",
		"variant", variant.Name,
		"path", path,
		"entries", len(changelog.Entries),
	)

	summary := p.dispatcher.Dispatch(ctx, model.Payload{
		Variant:        variant,
		Tag:            tag,
		BaseOutputName: p.baseOutputName,
		Changelog:      changelog.Render(),
	})

	if failed := summary.Failed(); len(failed) > 0 {
		kinds := make([]string, 0, len(failed))
		for _, r := range failed {
			kinds = append(kinds, string(r.Kind))
		}
		return tag, goerr.New("delivery failed for some targets",
			goerr.T(types.ErrTagDelivery),
			goerr.V("variant", variant.Name),
			goerr.V("failed_targets", strings.Join(kinds, ",")))
	}

	return tag, nil
}

// Run executes the pipeline for every variant, one worker per variant.
// Variants share no mutable state (disjoint variant-scoped files), so
// failures and results are collected independently.
func (p *Pipeline) Run(ctx context.Context, variants []model.BuildVariant) error {
	runID := uuid.NewString()
	logger := ctxlog.From(ctx).With("run_id", runID)
	ctx = ctxlog.With(ctx, logger)

	logger.Info("Starting publish pipeline", "variants", len(variants))

	group := async.NewGroup()
	for _, variant := range variants {
		v := variant
		group.Go(ctx, v.Name, func(ctx context.Context) error {
			_, err := p.RunVariant(ctx, v)
			return err
		})
	}

	errs := group.Wait()
	if len(errs) == 0 {
		logger.Info("Publish pipeline finished")
		return nil
	}

	names := make([]string, 0, len(errs))
	for name, err := range errs {
		logger.Error("Variant pipeline failed", "variant", name, "error", err)
		names = append(names, name)
	}

	return goerr.New("pipeline failed for some variants",
		goerr.V("run_id", runID),
		goerr.V("variants", strings.Join(names, ",")))
}
