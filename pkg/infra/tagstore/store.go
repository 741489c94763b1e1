package tagstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"

	"github.com/dimsuz/build-publish/pkg/domain/model"
	"github.com/dimsuz/build-publish/pkg/domain/types"
)

// Store persists one TagRecord per variant as a JSON file under dir.
// Variants use disjoint paths, so parallel pipelines never contend.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created on first
// Save, not here.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the state file path for a variant.
func (s *Store) Path(variant model.BuildVariant) string {
	return filepath.Join(s.dir, fmt.Sprintf("last-tag-%s.json", variant.Name))
}

// Load reads the variant's persisted record. A missing file yields
// (nil, nil); malformed content is fatal for the variant so that an
// already-published build number is never silently reissued.
func (s *Store) Load(variant model.BuildVariant) (*model.TagRecord, error) {
	raw, err := os.ReadFile(s.Path(variant))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read tag state file",
			goerr.T(types.ErrTagState), goerr.V("path", s.Path(variant)))
	}

	var rec model.TagRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, goerr.Wrap(err, "tag state file is malformed",
			goerr.T(types.ErrTagState), goerr.V("path", s.Path(variant)))
	}
	if rec.Name == "" || rec.BuildNumber < 1 {
		return nil, goerr.New("tag state file has invalid fields",
			goerr.T(types.ErrTagState),
			goerr.V("path", s.Path(variant)),
			goerr.V("name", rec.Name),
			goerr.V("buildNumber", rec.BuildNumber))
	}

	return &rec, nil
}

// Exists reports whether a record has been persisted for the variant.
func (s *Store) Exists(variant model.BuildVariant) bool {
	_, err := os.Stat(s.Path(variant))
	return err == nil
}

// Save writes the record atomically: marshal to a temp file in the same
// directory, then rename over the final path. A cancelled run leaves either
// the old state or the new state, never a partial file.
func (s *Store) Save(variant model.BuildVariant, rec model.TagRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create state directory",
			goerr.T(types.ErrTagState), goerr.V("dir", s.dir))
	}

	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to marshal tag record", goerr.T(types.ErrTagState))
	}

	tmp, err := os.CreateTemp(s.dir, "last-tag-*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp state file",
			goerr.T(types.ErrTagState), goerr.V("dir", s.dir))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return goerr.Wrap(err, "failed to write temp state file",
			goerr.T(types.ErrTagState), goerr.V("path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temp state file",
			goerr.T(types.ErrTagState), goerr.V("path", tmp.Name()))
	}

	if err := os.Rename(tmp.Name(), s.Path(variant)); err != nil {
		return goerr.Wrap(err, "failed to replace state file",
			goerr.T(types.ErrTagState), goerr.V("path", s.Path(variant)))
	}

	return nil
}
