package model

import "strings"

// Commit is the slice of git commit metadata the changelog cares about.
type Commit struct {
	Hash    string
	Message string
	Author  string
}

// ChangelogEntry is one release-worthy line extracted from a commit message.
type ChangelogEntry struct {
	Hash string
	Text string
}

// Changelog holds the ordered entries for one variant's release, oldest
// commit first.
type Changelog struct {
	Variant BuildVariant
	Tag     TagRecord
	Entries []ChangelogEntry
}

// Empty reports whether the range produced no entries.
func (c Changelog) Empty() bool {
	return len(c.Entries) == 0
}

// Render serializes the changelog as the flat text artifact, one entry per
// line with a trailing newline, empty string when there are no entries.
func (c Changelog) Render() string {
	if c.Empty() {
		return ""
	}

	var sb strings.Builder
	for _, e := range c.Entries {
		sb.WriteString(e.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
