package model

// BuildVariant identifies one independent release line. It is created once
// per pipeline run and never mutated afterwards.
type BuildVariant struct {
	Name         string // Variant name, e.g. "internal" or "release"
	ArtifactPath string // Output artifact this release line produces
}

// DefaultReleaseName is the sentinel name used before any tag exists for
// the variant.
func (v BuildVariant) DefaultReleaseName() string {
	return "v0.0.1-" + v.Name
}
