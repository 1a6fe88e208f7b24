package pathmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if filepath.Ext(f) == "" {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
}

func TestNewInputPath(t *testing.T) {
	root := t.TempDir()

	in, err := NewInputPath(root, root, true)
	require.NoError(t, err)
	assert.Equal(t, "", in.Rel)
	assert.False(t, in.IsMarkdown)

	in, err = NewInputPath(root, filepath.Join(root, "a", "b.md"), false)
	require.NoError(t, err)
	assert.Equal(t, "a/b.md", in.Rel)
	assert.True(t, in.IsMarkdown)

	in, err = NewInputPath(root, filepath.Join(root, "a", "b.png"), false)
	require.NoError(t, err)
	assert.False(t, in.IsMarkdown)
}

func TestMapper_Map(t *testing.T) {
	export := t.TempDir()
	content := t.TempDir()
	writeTree(t, export, "My Notes/Page One.md", "My Notes/img/Pic 1.png", "Topic.md", "Topic")

	m := New(content, Options{Slugify: true})

	tests := []struct {
		rel   string
		isDir bool
		want  string
	}{
		{rel: "My Notes/Page One.md", want: "My-Notes/Page-One.md"},
		{rel: "My Notes/img/Pic 1.png", want: "My-Notes/img/Pic-1.png"},
		{rel: "My Notes", isDir: true, want: "My-Notes"},
		{rel: "Topic.md", want: "Topic-nested.md"},
		{rel: "Topic", isDir: true, want: "Topic"},
		{rel: "", isDir: true, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			in, err := NewInputPath(export, filepath.Join(export, filepath.FromSlash(tt.rel)), tt.isDir)
			require.NoError(t, err)
			got := m.Map(in)
			assert.Equal(t, tt.want, got.Rel)
			assert.Equal(t, filepath.Join(content, filepath.FromSlash(tt.want)), got.Abs)
			assert.Empty(t, got.Section)
		})
	}
}

func TestMapper_Map_SlugifyDisabled(t *testing.T) {
	export := t.TempDir()
	writeTree(t, export, "My Notes/Page One.md")

	m := New("/site/content", Options{})
	in, err := NewInputPath(export, filepath.Join(export, "My Notes", "Page One.md"), false)
	require.NoError(t, err)
	assert.Equal(t, "My Notes/Page One.md", m.Map(in).Rel)
}

func TestMapper_WithSection(t *testing.T) {
	m := New("/site/content", Options{Slugify: true})
	got := m.WithSection(Mapping{Rel: "deep/dir/Page.md", Abs: "/site/content/deep/dir/Page.md"}, "books")

	assert.Equal(t, "books/Page.md", got.Rel)
	assert.Equal(t, "books", got.Section)
	assert.Equal(t, filepath.Join("/site/content", "books", "Page.md"), got.Abs)
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/notes/a", PageURL(Mapping{Rel: "notes/a.md"}))
	assert.Equal(t, "/My%20Notes/a%3Fb", PageURL(Mapping{Rel: "My Notes/a?b.md"}))
	assert.Equal(t, "/", EscapePath(""))
}
