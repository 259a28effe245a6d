// Package source implements domain.FileSource by walking the filesystem.
package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"bin":          true,
	"build":        true,
	"testdata":     true,
}

// Files above this size are skipped; detection rules are content
// predicates over source text, not binary blobs.
const maxFileSize = 1 << 20

var errStopWalk = errors.New("walk stopped by consumer")

// FSSource walks a directory tree and yields (path, content) pairs. The
// walk is lazy: it reads one file at a time and stops as soon as the
// consumer declines the next file.
type FSSource struct{}

func New() *FSSource {
	return &FSSource{}
}

// List implements domain.FileSource. An unreadable or non-directory root
// is an InputError, surfaced before anything is yielded.
func (s *FSSource) List(root string, filters domain.Filters, yield func(domain.SourceFile) bool) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return &domain.InputError{Path: root, Err: err}
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return &domain.InputError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return &domain.InputError{Path: root, Err: errors.New("not a directory")}
	}

	excludedDirs := make(map[string]bool, len(filters.Exclude))
	for _, e := range filters.Exclude {
		excludedDirs[strings.TrimSuffix(e, "/")] = true
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != absRoot && (skipDirs[d.Name()] || excludedDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !selected(rel, filters) {
			return nil
		}

		fi, err := d.Info()
		if err != nil || fi.Size() > maxFileSize {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil // unreadable single files are skipped, not fatal
		}

		if !yield(domain.SourceFile{Path: rel, Content: string(data)}) {
			return errStopWalk
		}
		return nil
	})

	if errors.Is(err, errStopWalk) {
		return nil
	}
	return err
}

func selected(rel string, filters domain.Filters) bool {
	for _, e := range filters.Exclude {
		if domain.PathMatch(e, rel) {
			return false
		}
	}
	if len(filters.Include) == 0 {
		return true
	}
	for _, inc := range filters.Include {
		if domain.PathMatch(inc, rel) {
			return true
		}
	}
	return false
}
