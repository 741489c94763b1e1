package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/interfaces"
	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
)

type changelogBuilder struct {
	git    interfaces.GitClient
	marker string
}

// NewChangelogBuilder creates the changelog stage. Only commits whose
// message contains the marker become entries; the marker itself is
// stripped from the entry text.
func NewChangelogBuilder(git interfaces.GitClient, marker string) interfaces.ChangelogUseCase {
	return &changelogBuilder{
		git:    git,
		marker: marker,
	}
}

// Build collects the entries for the range (previous tag, HEAD], oldest
// commit first. The previous tag is the most recent variant tag below the
// resolved build number; a variant with no such tag uses the full history.
// An empty range is an empty changelog, not an error.
func (uc *changelogBuilder) Build(ctx context.Context, variant model.BuildVariant, tag model.TagRecord) (model.Changelog, error) {
	logger := ctxlog.From(ctx)

	records, err := variantTags(ctx, uc.git, variant)
	if err != nil {
		return model.Changelog{}, err
	}

	sinceTag := ""
	for _, rec := range records {
		if rec.BuildNumber < tag.BuildNumber {
			sinceTag = rec.TagName()
		}
	}

	commits, err := uc.git.CommitsSinceTag(ctx, sinceTag)
	if err != nil {
		return model.Changelog{}, err
	}

	var entries []model.ChangelogEntry
	for _, commit := range commits {
		text, ok := uc.extractEntry(commit.Message)
		if !ok {
			continue
		}
		entries = append(entries, model.ChangelogEntry{
			Hash: commit.Hash,
			Text: text,
		})
	}

	logger.Info("Built changelog",
		"variant", variant.Name,
		"since_tag", sinceTag,
		"commits", len(commits),
		"entries", len(entries),
	)

	return model.Changelog{
		Variant: variant,
		Tag:     tag,
		Entries: entries,
	}, nil
}

// extractEntry applies the marker filter. The entry is the first line of
// the message with the marker removed and whitespace trimmed; a message
// that is nothing but the marker is dropped.
func (uc *changelogBuilder) extractEntry(message string) (string, bool) {
	line := message
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	if uc.marker != "" {
		if !strings.Contains(line, uc.marker) {
			return "", false
		}
		line = strings.ReplaceAll(line, uc.marker, "")
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	return line, true
}

// Write replaces the changelog artifact at path with the rendered text.
// The file is rewritten from scratch on every run, never appended.
func (uc *changelogBuilder) Write(changelog model.Changelog, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create changelog directory",
			goerr.T(types.ErrTagConfig), goerr.V("path", path))
	}

	if err := os.WriteFile(path, []byte(changelog.Render()), 0o644); err != nil {
		return goerr.Wrap(err, "failed to write changelog artifact",
			goerr.V("path", path))
	}
	return nil
}
