package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
)

// variantTags returns the records of all tags in the variant's namespace,
// oldest first by creation. Tags of other variants or with corrupt names
// are skipped.
func variantTags(ctx context.Context, git interfaces.GitClient, variant model.BuildVariant) ([]model.TagRecord, error) {
	logger := ctxlog.From(ctx)

	names, err := git.TagNames(ctx)
	if err != nil {
		return nil, err
	}

	var records []model.TagRecord
	for _, name := range names {
		rec, err := model.ParseTagName(name, variant)
		if err != nil {
			logger.Debug("Skipping tag outside variant namespace",
				"tag", name,
				"variant", variant.Name,
			)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}
