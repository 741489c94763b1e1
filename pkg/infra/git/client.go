package git

import (
	"context"
	"sort"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
)

// Client reads tag and commit history from a local repository.
type Client struct {
	repo *gogit.Repository
}

// Open opens the repository at path. A missing or unreadable repository is
// a history error, fatal for any stage that needs a range.
func Open(path string) (*Client, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository",
			goerr.T(types.ErrTagHistory), goerr.V("path", path))
	}
	return &Client{repo: repo}, nil
}

type taggedRef struct {
	name string
	when time.Time
}

// TagNames returns all tag names ordered by creation, oldest first.
// Annotated tags order by tagger time, lightweight tags by the commit time
// of their target.
func (c *Client) TagNames(ctx context.Context) ([]string, error) {
	iter, err := c.repo.Tags()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags", goerr.T(types.ErrTagHistory))
	}

	var tags []taggedRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		when, err := c.refTime(ref)
		if err != nil {
			return err
		}
		tags = append(tags, taggedRef{name: ref.Name().Short(), when: when})
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to iterate tags", goerr.T(types.ErrTagHistory))
	}

	sort.SliceStable(tags, func(i, j int) bool {
		if !tags[i].when.Equal(tags[j].when) {
			return tags[i].when.Before(tags[j].when)
		}
		return tags[i].name < tags[j].name
	})

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.name)
	}
	return names, nil
}

func (c *Client) refTime(ref *plumbing.Reference) (time.Time, error) {
	if tag, err := c.repo.TagObject(ref.Hash()); err == nil {
		return tag.Tagger.When, nil
	}

	commit, err := c.repo.CommitObject(ref.Hash())
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "failed to resolve tag target",
			goerr.V("tag", ref.Name().Short()))
	}
	return commit.Committer.When, nil
}

// CommitsSinceTag returns the commits after tagName up to HEAD, oldest
// first. Merge commits are skipped. An empty tagName yields the full
// history (first-ever release).
func (c *Client) CommitsSinceTag(ctx context.Context, tagName string) ([]model.Commit, error) {
	head, err := c.repo.Head()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve HEAD", goerr.T(types.ErrTagHistory))
	}

	var boundary plumbing.Hash
	if tagName != "" {
		boundary, err = c.tagCommitHash(tagName)
		if err != nil {
			return nil, err
		}
	}

	iter, err := c.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read commit log", goerr.T(types.ErrTagHistory))
	}

	var commits []model.Commit
	found := tagName == ""
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if commit.Hash == boundary {
			found = true
			return storer.ErrStop
		}
		if commit.NumParents() > 1 {
			return nil
		}
		commits = append(commits, model.Commit{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
			Author:  commit.Author.Name,
		})
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk commit history", goerr.T(types.ErrTagHistory))
	}

	if !found {
		return nil, goerr.New("tag not found in HEAD history",
			goerr.T(types.ErrTagHistory), goerr.V("tag", tagName))
	}

	// Log walks newest first; the changelog contract is oldest first.
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}

	return commits, nil
}

func (c *Client) tagCommitHash(tagName string) (plumbing.Hash, error) {
	ref, err := c.repo.Tag(tagName)
	if err != nil {
		return plumbing.ZeroHash, goerr.Wrap(err, "failed to resolve tag",
			goerr.T(types.ErrTagHistory), goerr.V("tag", tagName))
	}

	// Peel annotated tags down to the commit they point at.
	if tag, err := c.repo.TagObject(ref.Hash()); err == nil {
		commit, err := tag.Commit()
		if err != nil {
			return plumbing.ZeroHash, goerr.Wrap(err, "failed to peel annotated tag",
				goerr.T(types.ErrTagHistory), goerr.V("tag", tagName))
		}
		return commit.Hash, nil
	}

	return ref.Hash(), nil
}
