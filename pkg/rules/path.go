package rules

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/scmkit/go-sparse/pkg/errors"
)

// DirFlag describes whether a candidate path is known to be a directory.
// Lookup needs it to skip directory-only rules: a candidate known not to be
// a directory never matches them, while an unknown one still can.
type DirFlag int8

const (
	// DirFlagUnknown means the caller has no directory information.
	DirFlagUnknown DirFlag = iota
	// DirFlagFalse means the candidate is known not to be a directory.
	DirFlagFalse
	// DirFlagTrue means the candidate is a directory.
	DirFlagTrue
)

// Path is a lookup candidate: a normalized repository-relative path plus the
// directory flag for its leaf. Every ancestor prefix visited during lookup
// is a directory by construction.
type Path struct {
	rel string
	dir DirFlag
}

// NewPath wraps an already-normalized repository-relative path. Use
// NormalizePath first for paths coming from outside the library.
func NewPath(rel string, dir DirFlag) Path {
	return Path{rel: rel, dir: dir}
}

// String returns the relative path.
func (p Path) String() string { return p.rel }

// Dir returns the leaf directory flag.
func (p Path) Dir() DirFlag { return p.dir }

// NormalizePath converts a caller-supplied path into the repository-relative
// slash-separated form lookup expects. An absolute path under a non-empty
// worktree is relativized against it; any other leading "/" anchors to the
// repository root, matching the pattern grammar. The repository root itself
// normalizes to the empty string. Paths that escape the repository root are
// rejected.
func NormalizePath(name, worktree string) (string, error) {
	name = filepath.ToSlash(name)

	if worktree != "" && path.IsAbs(name) {
		wt := strings.TrimSuffix(filepath.ToSlash(worktree), "/")
		switch {
		case name == wt:
			name = ""
		case strings.HasPrefix(name, wt+"/"):
			name = name[len(wt)+1:]
		}
	}

	name = path.Clean(name)
	if name == "." || name == "/" {
		return "", nil
	}
	name = strings.TrimPrefix(name, "/")
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", errors.NewInvalidArgumentError(
			"path escapes the repository root: "+name, nil)
	}

	return name, nil
}
