package interfaces

import "github.com/dimsuz/build-publish/pkg/domain/model"

// TagStore reads and writes the per-variant persisted release identity.
// Load returns (nil, nil) when no record exists; malformed content is an
// error, never a silent default. Save is called by the resolve stage only.
type TagStore interface {
	Load(variant model.BuildVariant) (*model.TagRecord, error)
	Exists(variant model.BuildVariant) bool
	Save(variant model.BuildVariant, rec model.TagRecord) error
}
