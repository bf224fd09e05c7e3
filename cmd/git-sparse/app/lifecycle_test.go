package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scmkit/go-sparse/pkg/gitconfig"
)

// TestLifecycleCommands drives the command tree end-to-end against a real
// repository. The commands share the package-level root command, so the
// steps run in sequence within a single test.
func TestLifecycleCommands(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	patternFile := filepath.Join(dir, ".git", "info", "sparse-checkout")
	flags := gitconfig.NewStore(repo)

	root := NewRootCmd()
	run := func(args ...string) error {
		root.SetArgs(append(args, "--repo", dir))
		return root.Execute()
	}

	t.Run("init writes defaults and enables", func(t *testing.T) {
		require.NoError(t, run("init"))

		on, err := flags.Bool("core.sparseCheckout")
		require.NoError(t, err)
		assert.True(t, on)

		raw, err := os.ReadFile(patternFile)
		require.NoError(t, err)
		assert.Equal(t, "/*\n!/*/", string(raw))
	})

	t.Run("add appends", func(t *testing.T) {
		require.NoError(t, run("add", "keep.txt"))

		raw, err := os.ReadFile(patternFile)
		require.NoError(t, err)
		assert.Equal(t, "/*\n!/*/\nkeep.txt", string(raw))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, run("set", "docs/", "!docs/build/"))

		raw, err := os.ReadFile(patternFile)
		require.NoError(t, err)
		assert.Equal(t, "docs/\n!docs/build/", string(raw))
	})

	t.Run("check classifies without error", func(t *testing.T) {
		require.NoError(t, run("check", "docs/guide.md", "src/main.go"))
	})

	t.Run("disable flips the flag and keeps the file", func(t *testing.T) {
		require.NoError(t, run("disable"))

		on, err := flags.Bool("core.sparseCheckout")
		require.NoError(t, err)
		assert.False(t, on)

		raw, err := os.ReadFile(patternFile)
		require.NoError(t, err)
		assert.Equal(t, "docs/\n!docs/build/", string(raw))
	})

	t.Run("list succeeds after disable", func(t *testing.T) {
		require.NoError(t, run("list"))
	})
}
