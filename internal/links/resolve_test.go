package links

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/pathmap"
)

func newTestResolver(t *testing.T, slugify bool) (*Resolver, string, *bytes.Buffer) {
	t.Helper()
	content := filepath.Join(t.TempDir(), "content")
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewResolver(content, pathmap.New(content, pathmap.Options{Slugify: slugify}), logger), content, &buf
}

func TestResolve(t *testing.T) {
	r, content, _ := newTestResolver(t, true)
	src := Source{Rel: "notes/a.md", DestDir: filepath.Join(content, "notes")}

	tests := []struct {
		target  string
		want    string
		wantErr error
	}{
		{target: "./b", want: "/notes/b"},
		{target: "b", want: "/notes/b"},
		{target: "../Other%20Dir/My%20Page", want: "/Other-Dir/My-Page"},
		{target: "img/Photo%201.png", want: "/notes/img/Photo-1.png"},
		{target: "../../outside", want: NotFoundURL, wantErr: ErrOutsideRoot},
		{target: "..", want: "/"},
		{target: "", want: NotFoundURL, wantErr: ErrEmptyTarget},
		{target: "bad%zzescape", want: NotFoundURL, wantErr: ErrBadEscape},
		{target: "/notes/b", want: "/notes/b"},
		{target: "/Other%20Dir/My%20Page", want: "/Other-Dir/My-Page"},
		{target: "/../outside", want: NotFoundURL, wantErr: ErrOutsideRoot},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got, err := r.Resolve(tt.target, src)
			assert.Equal(t, tt.want, got)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, ferrors.CategoryLink, ferrors.GetCategory(err))
		})
	}
}

func TestResolve_SameTargetFromDifferentSources(t *testing.T) {
	r, content, _ := newTestResolver(t, true)

	fromA, err := r.Resolve("../shared/x", Source{DestDir: filepath.Join(content, "a")})
	require.NoError(t, err)
	fromB, err := r.Resolve("shared/x", Source{DestDir: content})
	require.NoError(t, err)
	assert.Equal(t, fromA, fromB)
}

func TestResolve_SlugifyDisabledEscapes(t *testing.T) {
	r, content, _ := newTestResolver(t, false)
	got, err := r.Resolve("My%20Page", Source{DestDir: content})
	require.NoError(t, err)
	assert.Equal(t, "/My%20Page", got)
}

func TestParse_Scenario(t *testing.T) {
	r, content, _ := newTestResolver(t, true)
	src := Source{Rel: "notes/a.md", DestDir: filepath.Join(content, "notes")}

	line, urls := r.Parse("Go to [See B](./b.md#sec) now.\n", src)
	assert.Equal(t, "Go to {{ abs_url(abs=\"/notes/b#sec\", text=\"See B\") }} now.\n", line)
	assert.Equal(t, []string{"/notes/b"}, urls)

	again, againURLs := r.Parse("Go to [See B](./b.md#sec) now.\n", src)
	assert.Equal(t, line, again)
	assert.Equal(t, urls, againURLs)
}

func TestParse_RootAnchoredTarget(t *testing.T) {
	r, content, _ := newTestResolver(t, true)
	src := Source{Rel: "deep/er/c.md", DestDir: filepath.Join(content, "deep", "er")}

	line, urls := r.Parse("[B](/notes/b.md#top)", src)
	assert.Equal(t, `{{ abs_url(abs="/notes/b#top", text="B") }}`, line)
	assert.Equal(t, []string{"/notes/b"}, urls)
}

func TestParse_OutsideRootLogsAndUsesSentinel(t *testing.T) {
	r, content, logs := newTestResolver(t, true)
	src := Source{Rel: "notes/a.md", DestDir: filepath.Join(content, "notes")}

	line, urls := r.Parse("[Out](../../outside.md)", src)
	assert.Equal(t, `{{ abs_url(abs="/404", text="Out") }}`, line)
	assert.Equal(t, []string{NotFoundURL}, urls)
	assert.Contains(t, logs.String(), "Unresolvable link")
	assert.Contains(t, logs.String(), "notes/a.md")
}

func TestParse_MixedRendering(t *testing.T) {
	r, content, _ := newTestResolver(t, true)
	src := Source{Rel: "a.md", DestDir: content}

	line, urls := r.Parse("![Pic](img/cat.JPG) [clip.mp4](media/clip.mp4) and [Doc](doc.md)", src)
	assert.Equal(t, "!![Pic](/img/cat.JPG) {{ video(url=\"/media/clip.mp4\", alt=\"clip.mp4\") }} and {{ abs_url(abs=\"/doc\", text=\"Doc\") }}", line)
	assert.Equal(t, []string{"/img/cat.JPG", "/media/clip.mp4", "/doc"}, urls)
}

func TestParse_NoLinks(t *testing.T) {
	r, content, _ := newTestResolver(t, true)
	line, urls := r.Parse("nothing here\n", Source{DestDir: content})
	assert.Equal(t, "nothing here\n", line)
	assert.Nil(t, urls)
}

func TestParse_RepeatedLinkReplacedOnce(t *testing.T) {
	r, content, _ := newTestResolver(t, true)
	line, urls := r.Parse("[a](a.md) [a](a.md)", Source{DestDir: content})
	assert.Equal(t, `{{ abs_url(abs="/a", text="a") }} {{ abs_url(abs="/a", text="a") }}`, line)
	assert.Len(t, urls, 2)
}
