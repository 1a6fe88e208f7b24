package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\nkey: value\n---\n# Title\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_DelimiterWithTrailingSpaces(t *testing.T) {
	input := []byte("---  \nkey: value\n--- \nbody\n")

	fm, body, had, _, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\n"), fm)
	require.Equal(t, []byte("body\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, _, err := Split([]byte("---\na: 1\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("a: 1\n"), fm)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nkey: value\n# Title\n")

	_, _, had, _, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsFrontmatterAndBody(t *testing.T) {
	input := []byte("---\r\nkey: value\r\n---\r\n# Title\r\n")

	fm, body, had, style, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "\r\n", style.Newline)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestJoin_RoundTrip(t *testing.T) {
	input := []byte("---\nkey: value\n---\nbody\n")
	fm, body, had, style, err := Split(input)
	require.NoError(t, err)
	require.Equal(t, input, Join(fm, body, had, style))
}

func TestJoin_NoFrontmatter(t *testing.T) {
	require.Equal(t, []byte("body"), Join([]byte("x: 1\n"), []byte("body"), false, Style{}))
}

func TestParseYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]any
	}{
		{name: "empty", input: "", want: map[string]any{}},
		{name: "whitespace", input: "  \n", want: map[string]any{}},
		{name: "scalar and list", input: "tags:\n  - book\nmodified: 2024-01-02\n", want: map[string]any{
			"tags":     []any{"book"},
			"modified": "2024-01-02",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseYAML([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	_, err := ParseYAML([]byte("a: [unterminated\n"))
	require.Error(t, err)
}
