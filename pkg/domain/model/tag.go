package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// TagRecord is the persisted release identity of one variant. Exactly one
// record exists per variant; BuildNumber never decreases across resolutions.
type TagRecord struct {
	Name        string `json:"name"`
	BuildNumber int    `json:"buildNumber"`
}

// DefaultTagRecord is the identity of a variant's first-ever release.
func DefaultTagRecord(variant BuildVariant) TagRecord {
	return TagRecord{
		Name:        variant.DefaultReleaseName(),
		BuildNumber: 1,
	}
}

// TagName renders the git tag this record corresponds to,
// e.g. {v1.2.3-internal, 42} -> "v1.2.3-internal.42".
func (r TagRecord) TagName() string {
	return fmt.Sprintf("%s.%d", r.Name, r.BuildNumber)
}

// String is the human-readable form used by the last-tag diagnostic.
func (r TagRecord) String() string {
	return fmt.Sprintf("%s (build %d)", r.Name, r.BuildNumber)
}

// ParseTagName splits a variant-namespace tag back into a TagRecord. The tag
// must carry the "-<variant>" name suffix followed by ".<counter>". Tags of
// other variants or with a corrupt counter return an error and are skipped
// by the resolver.
func ParseTagName(tag string, variant BuildVariant) (TagRecord, error) {
	dot := strings.LastIndex(tag, ".")
	if dot < 0 || dot == len(tag)-1 {
		return TagRecord{}, goerr.New("tag has no build counter suffix", goerr.V("tag", tag))
	}

	name, counter := tag[:dot], tag[dot+1:]
	if !strings.HasSuffix(name, "-"+variant.Name) {
		return TagRecord{}, goerr.New("tag does not belong to variant",
			goerr.V("tag", tag), goerr.V("variant", variant.Name))
	}

	// The counter must render back to the same tag; "02" or "+2" would
	// produce a TagName naming a tag that does not exist.
	n, err := strconv.Atoi(counter)
	if err != nil || n < 1 || strconv.Itoa(n) != counter {
		return TagRecord{}, goerr.New("tag has malformed build counter",
			goerr.V("tag", tag), goerr.V("counter", counter))
	}

	return TagRecord{Name: name, BuildNumber: n}, nil
}
