package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scmkit/go-sparse/pkg/errors"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		worktree string
		want     string
	}{
		{"already relative", "a/b", "", "a/b"},
		{"dot segments cleaned", "./a/./b", "", "a/b"},
		{"double slashes collapsed", "a//b", "", "a/b"},
		{"trailing slash dropped", "a/b/", "", "a/b"},
		{"empty is the root", "", "", ""},
		{"dot is the root", ".", "", ""},
		{"slash is the root", "/", "", ""},
		{"leading slash anchors to root", "/sub/file", "", "sub/file"},
		{"absolute under worktree", "/repo/wt/sub/file", "/repo/wt", "sub/file"},
		{"absolute equal to worktree", "/repo/wt", "/repo/wt", ""},
		{"worktree with trailing slash", "/repo/wt/a", "/repo/wt/", "a"},
		{"interior parent collapsed", "a/b/../c", "", "a/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizePath(tt.path, tt.worktree)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePathEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
	}{
		{"bare parent", ".."},
		{"parent prefix", "../x"},
		{"cleaned to parent", "a/../.."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NormalizePath(tt.path, "")
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestPathAccessors(t *testing.T) {
	t.Parallel()

	p := NewPath("sub/file", DirFlagTrue)
	assert.Equal(t, "sub/file", p.String())
	assert.Equal(t, DirFlagTrue, p.Dir())
}
