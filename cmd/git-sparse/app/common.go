package app

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/spf13/cobra"

	"github.com/scmkit/go-sparse/pkg/sparse"
)

// openCheckout opens the repository named by the --repo flag and wires a
// sparse-checkout controller to it. Configuration updates are locked on
// <gitdir>/config.lock, matching git's own convention.
func openCheckout(cmd *cobra.Command) (*sparse.Checkout, error) {
	repoPath, err := cmd.Flags().GetString("repo")
	if err != nil {
		repoPath = "."
	}

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", repoPath, err)
	}

	var opts []sparse.Option
	if st, ok := repo.Storer.(*filesystem.Storage); ok {
		opts = append(opts, sparse.WithConfigLockPath(filepath.Join(st.Filesystem().Root(), "config.lock")))
	}

	return sparse.Open(repo, opts...)
}
