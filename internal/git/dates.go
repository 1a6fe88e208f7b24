package git

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
)

// DateIndex looks up the author time of the last commit touching a file.
// Results are cached per path. Not safe for concurrent use.
type DateIndex struct {
	repo  *git.Repository
	root  string
	cache map[string]time.Time
}

// OpenDateIndex opens the repository containing path, searching parent
// directories for .git.
func OpenDateIndex(path string) (*DateIndex, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, classify(err, "open", path)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, classify(err, "worktree", path)
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return nil, classify(err, "worktree", path)
	}
	return &DateIndex{repo: repo, root: root, cache: make(map[string]time.Time)}, nil
}

// LastModified returns the author time of the newest commit touching absPath.
// ok is false for files outside the worktree, untracked files and empty
// repositories.
func (d *DateIndex) LastModified(absPath string) (when time.Time, ok bool, err error) {
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return time.Time{}, false, classify(err, "resolve", absPath)
	}
	rel, err := filepath.Rel(d.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return time.Time{}, false, nil
	}
	rel = filepath.ToSlash(rel)

	if t, hit := d.cache[rel]; hit {
		return t, !t.IsZero(), nil
	}

	iter, err := d.repo.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			d.cache[rel] = time.Time{}
			return time.Time{}, false, nil
		}
		return time.Time{}, false, classify(err, "log", rel)
	}
	defer iter.Close()

	commit, err := iter.Next()
	switch {
	case errors.Is(err, io.EOF):
		d.cache[rel] = time.Time{}
		return time.Time{}, false, nil
	case err != nil:
		return time.Time{}, false, classify(err, "log", rel)
	}
	when = commit.Author.When
	d.cache[rel] = when
	return when, true, nil
}

func classify(err error, op, path string) error {
	return ferrors.GitError("git history unavailable").
		WithCause(err).
		WithContext("op", op).
		WithContext("path", path).
		Build()
}
