package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Occurrence
	}{
		{
			name: "markdown link with anchor",
			line: "See [See B](./b.md#sec) here",
			want: []Occurrence{{Match: "[See B](./b.md#sec)", Title: "See B", Target: "./b", MD: true, Anchor: "#sec", Start: 4, End: 23}},
		},
		{
			name: "resource link",
			line: "![pic](img/a%20b.png)",
			want: []Occurrence{{Match: "[pic](img/a%20b.png)", Title: "pic", Target: "img/a%20b.png", Start: 1, End: 21}},
		},
		{
			name: "external link alone",
			line: "[site](https://example.com)",
			want: nil,
		},
		{
			name: "title stretches past an external link",
			line: "[site](https://example.com) and [x](y.md)",
			want: []Occurrence{{
				Match:  "[site](https://example.com) and [x](y.md)",
				Title:  "site](https://example.com) and [x",
				Target: "y",
				MD:     true,
				Start:  0,
				End:    41,
			}},
		},
		{
			name: "adjacent links",
			line: "[a](a.md)[b](b.md)",
			want: []Occurrence{
				{Match: "[a](a.md)", Title: "a", Target: "a", MD: true, Start: 0, End: 9},
				{Match: "[b](b.md)", Title: "b", Target: "b", MD: true, Start: 9, End: 18},
			},
		},
		{
			name: "target with space is not a link",
			line: "[a](b c)",
			want: nil,
		},
		{
			name: "anchor backs off to last paren",
			line: "[a](b#x)y) tail",
			want: []Occurrence{{Match: "[a](b#x)y)", Title: "a", Target: "b", Anchor: "#x)y", Start: 0, End: 10}},
		},
		{
			name: "empty target with anchor",
			line: "[top](#intro)",
			want: []Occurrence{{Match: "[top](#intro)", Title: "top", Target: "", Anchor: "#intro", Start: 0, End: 13}},
		},
		{
			name: "title with brackets extends to next link opener",
			line: "[a [b] c](d.md)",
			want: []Occurrence{{Match: "[a [b] c](d.md)", Title: "a [b] c", Target: "d", MD: true, Start: 0, End: 15}},
		},
		{
			name: "nested link around external target dropped",
			line: "[[x](http://a)](b.md)",
			want: nil,
		},
		{
			name: "no links",
			line: "plain [text] (not) a link\n",
			want: nil,
		},
		{
			name: "trailing newline kept out of match",
			line: "[a](b.md)\n",
			want: []Occurrence{{Match: "[a](b.md)", Title: "a", Target: "b", MD: true, Start: 0, End: 9}},
		},
		{
			name: "dotted markdown name",
			line: "[v](v1.2.md)",
			want: []Occurrence{{Match: "[v](v1.2.md)", Title: "v", Target: "v1.2", MD: true, Start: 0, End: 12}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scan(tt.line))
		})
	}
}

func TestScan_Deterministic(t *testing.T) {
	line := "[a](x.md#h) mid [b](../y.png) [c](z)"
	first := Scan(line)
	require.Len(t, first, 3)
	require.Equal(t, first, Scan(line))
}
