// Package filter selects the files a run operates on.
package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/idelchi/goctr/pkg/pathmatch"
)

// Filter decides which files found below a directory are selected.
// Without include patterns every file is included. Excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
}

// New compiles include and exclude patterns. A leading "./" is ignored.
func New(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(normalize(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(normalize(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc}, nil
}

// Match reports whether path is selected. Paths are compared with forward slashes.
func (f *Filter) Match(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))

	if f.includes.Len() > 0 && !f.includes.MatchAny(path) {
		return false
	}

	return !f.excludes.MatchAny(path)
}

// Resolve expands args into a list of files. Files named in args are taken as
// they are; directories are walked and their regular files pass through Match.
// Every file appears once, in the order it was first found. scanned counts the
// files seen before selection.
func (f *Filter) Resolve(args []string) (files []string, scanned int, err error) {
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			logrus.WithField("file", path).Debug("skipping duplicate")

			return
		}

		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		arg = filepath.Clean(arg)

		info, err := os.Stat(arg)
		if err != nil {
			return nil, scanned, fmt.Errorf("getting file info for %q: %w", arg, err)
		}

		if !info.IsDir() {
			scanned++

			add(arg)

			continue
		}

		err = filepath.WalkDir(arg, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if !entry.Type().IsRegular() {
				return nil
			}

			scanned++

			if !f.Match(path) {
				logrus.WithField("file", path).Debug("filtered out")

				return nil
			}

			add(path)

			return nil
		})
		if err != nil {
			return nil, scanned, fmt.Errorf("walking %q: %w", arg, err)
		}
	}

	if len(files) == 0 {
		return nil, scanned, fmt.Errorf("%w: %v", ErrNoFiles, args)
	}

	return files, scanned, nil
}

func normalize(patterns []string) []string {
	out := make([]string, 0, len(patterns))

	for _, p := range patterns {
		out = append(out, strings.TrimPrefix(p, "./"))
	}

	return out
}
