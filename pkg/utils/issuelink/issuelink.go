package issuelink

import (
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// Style selects the markup dialect of the destination channel.
type Style int

const (
	StylePlain Style = iota
	StyleMarkdown
	StyleSlack
	StyleHTML
)

// Linker rewrites issue references matching Pattern into links under
// Prefix. It is a pure text transform and assumes nothing about the issue
// tracker vendor.
type Linker struct {
	pattern *regexp.Regexp
	prefix  string
}

// New compiles the configured issue pattern. An empty pattern or prefix
// yields a no-op linker.
func New(pattern, prefix string) (*Linker, error) {
	if pattern == "" || prefix == "" {
		return &Linker{}, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid issue pattern", goerr.V("pattern", pattern))
	}

	return &Linker{pattern: re, prefix: prefix}, nil
}

// Rewrite replaces every issue reference in text with a link in the given
// style. Text without references is returned unchanged.
func (l *Linker) Rewrite(text string, style Style) string {
	if l.pattern == nil {
		return text
	}

	return l.pattern.ReplaceAllStringFunc(text, func(ref string) string {
		url := l.prefix + ref
		switch style {
		case StyleMarkdown:
			return fmt.Sprintf("[%s](%s)", ref, url)
		case StyleSlack:
			return fmt.Sprintf("<%s|%s>", url, ref)
		case StyleHTML:
			return fmt.Sprintf("<a href=%q>%s</a>", url, ref)
		default:
			return url
		}
	})
}
