package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		occ  Occurrence
		url  string
		want string
	}{
		{name: "video by title", occ: Occurrence{Title: "Demo.WEBM", Target: "demo.webm"}, url: "/demo.webm", want: `{{ video(url="/demo.webm", alt="Demo.WEBM") }}`},
		{name: "image by target", occ: Occurrence{Title: "diagram", Target: "img/d.SVG"}, url: "/img/d.SVG", want: "![diagram](/img/d.SVG)"},
		{name: "generic with anchor", occ: Occurrence{Title: "B", Target: "b", Anchor: "#sec"}, url: "/b", want: `{{ abs_url(abs="/b#sec", text="B") }}`},
		{name: "image anchor dropped", occ: Occurrence{Title: "x", Target: "x.png", Anchor: "#a"}, url: "/x.png", want: "![x](/x.png)"},
		{name: "sentinel", occ: Occurrence{Title: "gone"}, url: NotFoundURL, want: `{{ abs_url(abs="/404", text="gone") }}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.occ, tt.url))
		})
	}
}
