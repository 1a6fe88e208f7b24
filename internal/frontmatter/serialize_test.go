package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_Empty(t *testing.T) {
	out, err := SerializeYAML(nil, Style{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSerializeYAML_SortsKeys(t *testing.T) {
	out, err := SerializeYAML(map[string]any{"b": 1, "a": "x"}, Style{Newline: "\n"})
	require.NoError(t, err)
	require.Equal(t, "a: x\nb: 1\n", string(out))
}

func TestSerializeYAML_CRLF(t *testing.T) {
	out, err := SerializeYAML(map[string]any{"a": "x", "b": "y"}, Style{Newline: "\r\n"})
	require.NoError(t, err)
	require.Equal(t, "a: x\r\nb: y\r\n", string(out))
}

func TestSerializeOrdered(t *testing.T) {
	fields := Fields{
		{Key: "title", Value: Quoted("My Note")},
		{Key: "date", Value: Timestamp("2024-01-02T10:15:00+00:00")},
		{Key: "template", Value: "blog/page.html"},
		{Key: "extra", Value: Fields{{Key: "prerender", Value: FlowList{"/a", "/b"}}}},
	}

	out, err := SerializeOrdered(fields, Style{})
	require.NoError(t, err)
	require.Equal(t, "title: \"My Note\"\n"+
		"date: 2024-01-02T10:15:00+00:00\n"+
		"template: blog/page.html\n"+
		"extra:\n"+
		"    prerender: [/a, /b]\n", string(out))
}

func TestSerializeOrdered_EmptyFlowList(t *testing.T) {
	out, err := SerializeOrdered(Fields{{Key: "prerender", Value: FlowList{}}}, Style{})
	require.NoError(t, err)
	require.Equal(t, "prerender: []\n", string(out))
}

func TestSerializeOrdered_QuotesAmbiguousStrings(t *testing.T) {
	out, err := SerializeOrdered(Fields{{Key: "title", Value: "true"}}, Style{})
	require.NoError(t, err)
	require.Equal(t, "title: \"true\"\n", string(out))
}
