package receipts

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// DefaultPatterns is used when a directory is collected without include
// patterns.
var DefaultPatterns = []string{"*.pdf", "*.PDF"}

// Matcher decides which files of a receipt directory are collected.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewMatcher compiles include and exclude glob patterns. Patterns match
// slash-separated paths relative to the collected directory; "*" stays
// within one directory and "**" crosses directories.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	m := &Matcher{}

	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern '%s': %w", pattern, err)
		}
		m.include = append(m.include, g)
	}

	for _, pattern := range exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
		m.exclude = append(m.exclude, g)
	}

	return m, nil
}

// Match reports whether rel is collected. Exclusions take precedence, and a
// matcher without include patterns accepts everything not excluded.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))

	for _, g := range m.exclude {
		if g.Match(rel) {
			return false
		}
	}

	if len(m.include) == 0 {
		return true
	}

	for _, g := range m.include {
		if g.Match(rel) {
			return true
		}
	}

	return false
}
