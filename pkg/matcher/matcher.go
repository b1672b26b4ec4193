// Package matcher expands wildcard source patterns into files under a base directory.
//
// Unlike filepath.Glob, hidden files are visited and a "*" also crosses
// directory separators, so "vim/*" matches "vim/colors/theme.vim".
package matcher

import (
	stderrors "errors"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/filesystem"
	"github.com/gobwas/glob"
)

var errStop = stderrors.New("matcher: stop walk")

// literal escapes the glob syntax fnmatch does not have: brace alternation
// and backslash escapes.
var literal = strings.NewReplacer(`\`, `\\`, "{", `\{`, "}", `\}`)

// Match lazily yields the paths, relative to base, of every file below base
// that matches pattern. The walk happens while the caller ranges over the
// sequence; breaking out of the loop ends it. Ranging again walks again.
func Match(fsys filesystem.FS, pattern, base string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		g, err := glob.Compile(literal.Replace(filepath.Clean(pattern)))
		if err != nil {
			yield("", errors.Wrapf(err, errors.ErrInvalidInput, "invalid pattern %q", pattern))
			return
		}

		base = filepath.Clean(base)
		walkErr := fsys.Walk(base, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !isFile(fsys, path, info) {
				return nil
			}

			rel, err := filepath.Rel(base, path)
			if err != nil {
				return err
			}
			if !g.Match(rel) {
				return nil
			}
			if !yield(rel, nil) {
				return errStop
			}
			return nil
		})

		if walkErr != nil && !stderrors.Is(walkErr, errStop) {
			yield("", errors.Wrapf(walkErr, errors.ErrFileAccess, "cannot walk %s", base))
		}
	}
}

// Collect drains a Match sequence into a slice.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var paths []string
	for path, err := range seq {
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// isFile reports whether info is a regular file, following symlinks.
func isFile(fsys filesystem.FS, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := fsys.Stat(path)
		if err != nil {
			return false
		}
		info = target
	}
	return info.Mode().IsRegular()
}
