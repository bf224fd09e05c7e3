// Package sparse implements sparse-checkout management for a go-git
// repository: enabling and disabling the feature, maintaining the pattern
// file, and classifying paths as included in or excluded from the checkout.
//
// The controller only classifies; it never materializes or removes
// working-tree files. Its writes are limited to the pattern file under the
// git directory and the core.sparseCheckout configuration flag.
package sparse

import (
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"

	"github.com/scmkit/go-sparse/pkg/errors"
	"github.com/scmkit/go-sparse/pkg/gitconfig"
	"github.com/scmkit/go-sparse/pkg/patterns"
	"github.com/scmkit/go-sparse/pkg/rules"
)

const (
	// ConfigKey is the configuration flag gating sparse checkout.
	ConfigKey = "core.sparseCheckout"

	// ignoreCaseKey selects case-insensitive pattern matching
	// repository-wide.
	ignoreCaseKey = "core.ignoreCase"

	// PatternFile is the pattern file's path relative to the git
	// directory.
	PatternFile = "info/sparse-checkout"
)

// DefaultPatterns returns the patterns Init writes into a fresh pattern
// file: keep everything in the repository root, drop every subdirectory.
func DefaultPatterns() []string {
	return []string{"/*", "!/*/"}
}

// Checkout manages the sparse-checkout state of one repository. Only the
// parsed-rule cache persists across operations; everything else is
// re-derived per call.
type Checkout struct {
	repo     *git.Repository
	store    *patterns.Store
	config   *gitconfig.Store
	cache    *rules.Cache
	worktree string
}

// Option configures a Checkout.
type Option func(*options)

type options struct {
	lockPath string
	gitDirFS billy.Filesystem
}

// WithConfigLockPath makes configuration flag updates run under a file lock
// at the given path, conventionally <gitdir>/config.lock.
func WithConfigLockPath(path string) Option {
	return func(o *options) {
		o.lockPath = path
	}
}

// WithGitDirFS supplies the filesystem holding the git directory for
// repositories whose storage does not expose one, such as in-memory
// storage.
func WithGitDirFS(fs billy.Filesystem) Option {
	return func(o *options) {
		o.gitDirFS = fs
	}
}

// fsStorer is implemented by go-git's filesystem storage.
type fsStorer interface {
	Filesystem() billy.Filesystem
}

// Open wires a sparse-checkout controller to an open repository.
func Open(repo *git.Repository, opts ...Option) (*Checkout, error) {
	if repo == nil {
		return nil, errors.NewInvalidArgumentError("repository must not be nil", nil)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	gitFS := o.gitDirFS
	if gitFS == nil {
		st, ok := repo.Storer.(fsStorer)
		if !ok {
			return nil, errors.NewInvalidArgumentError(
				"repository storage exposes no filesystem; pass WithGitDirFS", nil)
		}
		gitFS = st.Filesystem()
	}

	var cfgOpts []gitconfig.Option
	if o.lockPath != "" {
		cfgOpts = append(cfgOpts, gitconfig.WithLockPath(o.lockPath))
	}

	c := &Checkout{
		repo:   repo,
		store:  patterns.NewStore(gitFS, PatternFile),
		config: gitconfig.NewStore(repo, cfgOpts...),
		cache:  rules.NewCache(),
	}

	// A bare repository has no worktree; absolute candidate paths are
	// then matched as given.
	if wt, err := repo.Worktree(); err == nil {
		c.worktree = wt.Filesystem.Root()
	}

	return c, nil
}

// InitOptions control Init.
type InitOptions struct {
	// Patterns seeds a freshly created pattern file. When empty, the
	// defaults from DefaultPatterns are written instead.
	Patterns []string
}

// Init enables sparse checkout. The configuration flag is set true and the
// pattern file is created when absent, seeded with the given patterns or
// the defaults. An existing pattern file is never overwritten.
func (c *Checkout) Init(opts *InitOptions) error {
	if err := c.config.SetBool(ConfigKey, true); err != nil {
		return err
	}

	existed, err := c.store.Ensure()
	if err != nil {
		return err
	}
	if existed {
		return nil
	}

	seed := DefaultPatterns()
	if opts != nil && len(opts.Patterns) > 0 {
		seed = opts.Patterns
	}
	return c.store.Set(seed)
}

// Enabled reports whether sparse checkout is switched on. A missing flag
// reads as disabled.
func (c *Checkout) Enabled() (bool, error) {
	on, err := c.config.Bool(ConfigKey)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return on, nil
}

// List returns the pattern file's lines in file order, creating the file
// when it does not exist yet.
func (c *Checkout) List() ([]string, error) {
	if _, err := c.store.Ensure(); err != nil {
		return nil, err
	}
	return c.store.List()
}

// Set replaces the pattern file's contents with the given patterns. On a
// repository where sparse checkout is disabled, Set runs the full Init
// first, then overwrites whatever Init seeded.
func (c *Checkout) Set(patterns []string) error {
	on, err := c.Enabled()
	if err != nil {
		return err
	}
	if !on {
		if err := c.Init(nil); err != nil {
			return err
		}
	}
	return c.store.Set(patterns)
}

// Add appends the given patterns to the pattern file. When sparse checkout
// is disabled, Add does nothing: patterns are not accumulated into a
// configuration that is switched off. The read and write are not one
// transaction; a concurrent Add can be lost.
func (c *Checkout) Add(patterns []string) error {
	on, err := c.Enabled()
	if err != nil {
		return err
	}
	if !on {
		return nil
	}
	return c.store.Add(patterns)
}

// Disable switches sparse checkout off. The pattern file is left exactly
// as it is; no working-tree state is restored.
func (c *Checkout) Disable() error {
	return c.config.SetBool(ConfigKey, false)
}

// CheckPath classifies a path as included in or excluded from the sparse
// checkout. Every path is included while sparse checkout is disabled.
//
// The path may be worktree-absolute or repository-relative; it is
// normalized before lookup. A trailing separator marks it as a directory,
// anything else is treated as a non-directory; no filesystem stat is ever
// performed, so the classification works on bare repositories too.
func (c *Checkout) CheckPath(name string) (rules.Decision, error) {
	on, err := c.Enabled()
	if err != nil {
		return rules.Included, err
	}
	if !on {
		return rules.Included, nil
	}

	ignoreCase, err := c.ignoreCase()
	if err != nil {
		return rules.Included, err
	}
	rs, err := c.ruleSet(ignoreCase)
	if err != nil {
		return rules.Included, err
	}

	dir := rules.DirFlagFalse
	if strings.HasSuffix(strings.ReplaceAll(name, "\\", "/"), "/") {
		dir = rules.DirFlagTrue
	}

	rel, err := rules.NormalizePath(name, c.worktree)
	if err != nil {
		return rules.Included, err
	}
	if rel == "" {
		// The repository root is a directory and is never matched
		// against rules.
		dir = rules.DirFlagTrue
	}

	return rs.Lookup(rules.NewPath(rel, dir)), nil
}

// ignoreCase reads core.ignoreCase, defaulting to false when unset.
func (c *Checkout) ignoreCase() (bool, error) {
	fold, err := c.config.Bool(ignoreCaseKey)
	if err != nil {
		if errors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return fold, nil
}

// ruleSet parses the pattern file through the cache. The file is created
// when absent, so an enabled repository always has one; its size and mtime
// stamp the cache entry.
func (c *Checkout) ruleSet(ignoreCase bool) (*rules.RuleSet, error) {
	if _, err := c.store.Ensure(); err != nil {
		return nil, err
	}
	fi, err := c.store.Stat()
	if err != nil {
		return nil, err
	}

	stamp := rules.Stamp{Size: fi.Size(), ModTime: fi.ModTime(), IgnoreCase: ignoreCase}
	return c.cache.GetOrBuild(c.store.Path(), stamp, func() (*rules.RuleSet, error) {
		text, err := c.store.Content()
		if err != nil {
			return nil, err
		}
		return rules.Parse(text, rules.ParseOptions{IgnoreCase: ignoreCase}), nil
	})
}
