package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
)

func commitFile(t *testing.T, repo *git.Repository, dir, rel, content string, when time.Time) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(rel)
	require.NoError(t, err)
	_, err = wt.Commit("update "+rel, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: when},
	})
	require.NoError(t, err)
}

func TestDateIndex_LastModified(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	first := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 4, 12, 30, 0, 0, time.UTC)
	commitFile(t, repo, dir, "notes/a.md", "one", first)
	commitFile(t, repo, dir, "notes/b.md", "two", first.Add(time.Hour))
	commitFile(t, repo, dir, "notes/a.md", "one again", second)

	idx, err := OpenDateIndex(filepath.Join(dir, "notes"))
	require.NoError(t, err)

	when, ok, err := idx.LastModified(filepath.Join(dir, "notes", "a.md"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, when.Equal(second))

	when, ok, err = idx.LastModified(filepath.Join(dir, "notes", "b.md"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, when.Equal(first.Add(time.Hour)))

	untracked := filepath.Join(dir, "notes", "new.md")
	require.NoError(t, os.WriteFile(untracked, []byte("x"), 0o600))
	_, ok, err = idx.LastModified(untracked)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDateIndex_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	p := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))

	idx, err := OpenDateIndex(dir)
	require.NoError(t, err)
	_, ok, err := idx.LastModified(p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenDateIndex_NotARepository(t *testing.T) {
	_, err := OpenDateIndex(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ferrors.CategoryGit, ferrors.GetCategory(err))
}
