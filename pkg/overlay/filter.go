package overlay

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// keySeparator is the separator used in PathMap keys, regardless of the
// host's path convention.
const keySeparator = '/'

// FilterError is returned when an include or exclude pattern can't be
// compiled.
type FilterError struct {
	Pattern string
	Err     error
}

func (err FilterError) Error() string {
	return fmt.Sprintf("invalid glob %q: %s", err.Pattern, err.Err)
}

func (err FilterError) Unwrap() error {
	return err.Err
}

// Filter decides which relative paths are kept when mapping a directory.
// The zero value matches every path.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewFilter compiles the include and exclude patterns. `*` matches within a
// single path segment, `**` matches across segments. A leading `**/` also
// matches paths at the top level, so `**/*.js` matches both `a.js` and
// `lib/a.js`. An empty include list matches everything.
func NewFilter(include, exclude []string) (Filter, error) {
	includeGlobs, err := compileGlobs(include)
	if err != nil {
		return Filter{}, err
	}

	excludeGlobs, err := compileGlobs(exclude)
	if err != nil {
		return Filter{}, err
	}
	return Filter{include: includeGlobs, exclude: excludeGlobs}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, keySeparator)
		if err != nil {
			return nil, FilterError{Pattern: pattern, Err: err}
		}
		globs = append(globs, g)

		// gobwas requires `**/` to match at least one directory, so add the
		// top-level form as well.
		if rest := strings.TrimPrefix(pattern, "**/"); rest != pattern && rest != "" {
			g, err := glob.Compile(rest, keySeparator)
			if err != nil {
				return nil, FilterError{Pattern: pattern, Err: err}
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

// Match returns whether the relative path key matches at least one include
// pattern and none of the exclude patterns.
func (f Filter) Match(key string) bool {
	if len(f.include) > 0 && !matchAny(f.include, key) {
		return false
	}
	return !matchAny(f.exclude, key)
}

func matchAny(globs []glob.Glob, key string) bool {
	for _, g := range globs {
		if g.Match(key) {
			return true
		}
	}
	return false
}
