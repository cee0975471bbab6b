package typegen

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

// SourceFilter selects source files by include and exclude glob patterns
// matched against forward-slash source paths. "**" crosses directories,
// "*" does not.
type SourceFilter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewSourceFilter compiles the patterns. An empty include list selects
// every path.
func NewSourceFilter(include, exclude []string) (*SourceFilter, error) {
	f := &SourceFilter{}
	var err error
	if f.include, err = compileGlobs(include); err != nil {
		return nil, err
	}
	if f.exclude, err = compileGlobs(exclude); err != nil {
		return nil, err
	}
	return f, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrapf(errors.Wrap(errors.ErrInvalidConfig, err.Error()), "pattern %q", pattern)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Match reports whether sourcePath is selected
func (f *SourceFilter) Match(sourcePath string) bool {
	if f == nil {
		return true
	}
	p := strings.ReplaceAll(sourcePath, "\\", "/")
	for _, g := range f.exclude {
		if g.Match(p) {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, g := range f.include {
		if g.Match(p) {
			return true
		}
	}
	return false
}
