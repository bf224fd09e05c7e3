// Package patterns manages the sparse-checkout pattern file as plain text.
//
// The store deals in raw lines only: callers get back exactly what the file
// holds, in file order. Turning lines into matchable rules is the rules
// package's job.
package patterns

import (
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/scmkit/go-sparse/pkg/errors"
	"github.com/scmkit/go-sparse/pkg/logger"
)

// filePerm is the mode for a newly created pattern file.
const filePerm = 0o644

// Store reads and writes one pattern file on a filesystem.
type Store struct {
	fs   billy.Filesystem
	path string
}

// NewStore returns a store for the pattern file at the given slash-separated
// path on fs.
func NewStore(fs billy.Filesystem, filePath string) *Store {
	return &Store{fs: fs, path: filePath}
}

// Path returns the pattern file's path on the store's filesystem.
func (s *Store) Path() string {
	return s.path
}

// Stat returns the pattern file's metadata.
func (s *Store) Stat() (os.FileInfo, error) {
	fi, err := s.fs.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("pattern file does not exist: "+s.path, err)
		}
		return nil, errors.NewIOFailureError("failed to stat pattern file: "+s.path, err)
	}
	return fi, nil
}

// Ensure creates the pattern file, along with missing parent directories,
// when it does not exist yet. An existing file is never touched. It reports
// whether the file already existed.
func (s *Store) Ensure() (existed bool, err error) {
	_, err = s.fs.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if !os.IsNotExist(err) {
		return false, errors.NewIOFailureError("failed to stat pattern file: "+s.path, err)
	}

	if dir := path.Dir(s.path); dir != "." && dir != "/" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return false, errors.NewIOFailureError("failed to create pattern file directory: "+dir, err)
		}
	}
	f, err := s.fs.Create(s.path)
	if err != nil {
		return false, errors.NewIOFailureError("failed to create pattern file: "+s.path, err)
	}
	if err := f.Close(); err != nil {
		return false, errors.NewIOFailureError("failed to close pattern file: "+s.path, err)
	}

	logger.Debugf("created empty sparse-checkout file at %s", s.path)
	return false, nil
}

// Content returns the file's raw text. A missing file reads as empty.
func (s *Store) Content() (string, error) {
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.NewIOFailureError("failed to read pattern file: "+s.path, err)
	}
	return string(data), nil
}

// List returns the file's non-empty lines in order. Lines may be terminated
// by LF, CRLF, or a lone CR. A missing file yields an empty list.
func (s *Store) List() ([]string, error) {
	content, err := s.Content()
	if err != nil {
		return nil, err
	}
	return splitPatternLines(content), nil
}

// Set overwrites the file with the given patterns, one per line, joined with
// bare LF and no trailing newline. The write truncates in place rather than
// renaming a temp file: a crash mid-write can leave the file empty, and
// concurrent writers race with the last one winning.
func (s *Store) Set(patterns []string) error {
	content := strings.Join(patterns, "\n")
	if err := util.WriteFile(s.fs, s.path, []byte(content), filePerm); err != nil {
		return errors.NewIOFailureError("failed to write pattern file: "+s.path, err)
	}

	logger.Debugf("wrote %d sparse-checkout patterns to %s", len(patterns), s.path)
	return nil
}

// Add appends the given patterns to the file, preserving existing lines and
// making no attempt to deduplicate. The read and the write are not one
// transaction: a concurrent writer in between is overwritten.
func (s *Store) Add(patterns []string) error {
	existing, err := s.List()
	if err != nil {
		return err
	}
	return s.Set(append(existing, patterns...))
}

// splitPatternLines splits file content into non-empty lines, treating CR,
// LF, and CRLF as terminators.
func splitPatternLines(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
}
