package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// VersionPolicy decides the release name of the next record given the
// previous one. The build number is always incremented by one; only the
// semantic name is policy-driven.
type VersionPolicy interface {
	NextName(prev TagRecord) (string, error)
}

// CarryPolicy keeps the previous release name unchanged. This is the
// default: release names are bumped by humans tagging manually, builds in
// between reuse the name with a higher build number.
type CarryPolicy struct{}

func (CarryPolicy) NextName(prev TagRecord) (string, error) {
	return prev.Name, nil
}

// PatchPolicy bumps the patch component of a "vMAJOR.MINOR.PATCH-variant"
// release name, e.g. "v1.2.3-internal" -> "v1.2.4-internal".
type PatchPolicy struct{}

func (PatchPolicy) NextName(prev TagRecord) (string, error) {
	name := prev.Name

	variant := ""
	if i := strings.Index(name, "-"); i >= 0 {
		name, variant = name[:i], name[i:]
	}

	version := strings.TrimPrefix(name, "v")
	parts := strings.Split(version, ".")
	if len(parts) != 3 {
		return "", goerr.New("release name is not a semver triple", goerr.V("name", prev.Name))
	}

	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", goerr.Wrap(err, "release name has non-numeric patch component", goerr.V("name", prev.Name))
	}

	return fmt.Sprintf("v%s.%s.%d%s", parts[0], parts[1], patch+1, variant), nil
}

// ParseVersionPolicy maps the config value to a policy implementation.
func ParseVersionPolicy(s string) (VersionPolicy, error) {
	switch s {
	case "", "carry":
		return CarryPolicy{}, nil
	case "patch":
		return PatchPolicy{}, nil
	default:
		return nil, goerr.New("unknown version policy", goerr.V("policy", s))
	}
}
