// Package gitconfig provides typed access to repository configuration
// booleans through go-git.
//
// The store reads and writes the repository-local configuration only; no
// system or global config is merged in, which keeps boolean reads
// deterministic across machines.
package gitconfig

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/gofrs/flock"

	"github.com/scmkit/go-sparse/pkg/errors"
	"github.com/scmkit/go-sparse/pkg/logger"
)

// lockTimeout is the maximum time to wait for the config file lock.
const lockTimeout = 1 * time.Second

// lockRetryDelay is the interval between lock acquisition attempts.
const lockRetryDelay = 100 * time.Millisecond

// Store reads and writes booleans in a repository's local configuration.
type Store struct {
	repo *git.Repository

	// lockPath, when non-empty, names the file lock held around every
	// read-modify-write. The CLI passes <gitdir>/config.lock to mirror
	// git's own convention; embedders on in-memory storage leave it
	// empty and get unlocked updates.
	lockPath string
}

// Option configures a Store.
type Option func(*Store)

// WithLockPath makes every configuration update run under a file lock at
// the given path.
func WithLockPath(path string) Option {
	return func(s *Store) {
		s.lockPath = path
	}
}

// NewStore returns a configuration store bound to the given repository.
func NewStore(repo *git.Repository, opts ...Option) *Store {
	s := &Store{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Bool reads a boolean configuration value by its "section.name" (or
// "section.subsection.name") key. A key that is not set yields a NotFound
// error; a value outside git's boolean grammar yields an InvalidValue
// error. A key present with an empty value reads as true, matching git.
func (s *Store) Bool(key string) (bool, error) {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return false, err
	}

	cfg, err := s.repo.Config()
	if err != nil {
		return false, errors.NewIOFailureError("failed to read repository configuration", err)
	}

	sec := cfg.Raw.Section(section)
	if subsection != "" {
		sub := sec.Subsection(subsection)
		if !sub.HasOption(name) {
			return false, errors.NewNotFoundError("configuration key not set: "+key, nil)
		}
		return parseBool(key, sub.Option(name))
	}
	if !sec.HasOption(name) {
		return false, errors.NewNotFoundError("configuration key not set: "+key, nil)
	}
	return parseBool(key, sec.Option(name))
}

// SetBool writes a boolean configuration value under its "section.name"
// key, creating the section as needed. The write is a read-modify-write of
// the whole configuration, locked when the store carries a lock path.
func (s *Store) SetBool(key string, value bool) error {
	section, subsection, name, err := splitKey(key)
	if err != nil {
		return err
	}

	text := "false"
	if value {
		text = "true"
	}

	return s.Update(context.Background(), func(cfg *gitcfg.Config) error {
		sec := cfg.Raw.Section(section)
		if subsection != "" {
			sec.Subsection(subsection).SetOption(name, text)
		} else {
			sec.SetOption(name, text)
		}
		logger.Debugf("set %s=%s in repository configuration", key, text)
		return nil
	})
}

// Update performs a read-modify-write of the repository configuration,
// applying fn to the loaded config before storing it back. When the store
// has a lock path, the whole sequence runs under a file lock; acquisition
// failure or timeout yields a LockFailure error.
func (s *Store) Update(ctx context.Context, fn func(*gitcfg.Config) error) error {
	if s.lockPath != "" {
		fileLock := flock.New(s.lockPath)
		lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
		defer cancel()

		locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
		if err != nil {
			return errors.NewLockFailureError("failed to acquire config lock: "+s.lockPath, err)
		}
		if !locked {
			return errors.NewLockFailureError("timed out acquiring config lock: "+s.lockPath, nil)
		}
		defer fileLock.Unlock()
	}

	// Load after acquiring the lock so fn sees the latest state.
	cfg, err := s.repo.Config()
	if err != nil {
		return errors.NewIOFailureError("failed to read repository configuration", err)
	}
	if err := fn(cfg); err != nil {
		return err
	}
	if err := s.repo.SetConfig(cfg); err != nil {
		return errors.NewIOFailureError("failed to write repository configuration", err)
	}
	return nil
}

// splitKey breaks "section.name" or "section.subsection.name" into its
// parts. Anything deeper nests into the subsection, matching git's key
// grammar where only the first and last dot are structural.
func splitKey(key string) (section, subsection, name string, err error) {
	first := strings.IndexByte(key, '.')
	last := strings.LastIndexByte(key, '.')
	if first <= 0 || last >= len(key)-1 {
		return "", "", "", errors.NewInvalidArgumentError(
			"configuration key must be of the form section.name: "+key, nil)
	}

	section = key[:first]
	name = key[last+1:]
	if first != last {
		subsection = key[first+1 : last]
	}
	return section, subsection, name, nil
}

// parseBool applies git's boolean grammar: yes/on/true/1 are true,
// no/off/false/0 are false, and a bare key (empty value) is true.
func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "", "yes", "on", "true", "1":
		return true, nil
	case "no", "off", "false", "0":
		return false, nil
	}
	return false, errors.NewInvalidValueError(
		"configuration value of "+key+" is not a boolean: "+value, nil)
}
