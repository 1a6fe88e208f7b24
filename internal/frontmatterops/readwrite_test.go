package frontmatterops

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vaultsite/internal/frontmatter"
)

func TestRead_NoFrontmatter_ReturnsEmptyFieldsAndBody(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fields, body, had, style, err := Read(input)
	require.NoError(t, err)
	require.False(t, had)
	require.NotNil(t, fields)
	require.Empty(t, fields)
	require.Equal(t, input, body)
	require.Equal(t, "\n", style.Newline)
}

func TestRead_EmptyFrontmatterBlock_ReturnsHadWithEmptyFields(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	fields, body, had, _, err := Read(input)
	require.NoError(t, err)
	require.True(t, had)
	require.NotNil(t, fields)
	require.Empty(t, fields)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestRead_ValidYAMLFrontmatter_ReturnsFieldsAndBody(t *testing.T) {
	input := []byte("---\ngraph: false\ntags:\n  - one\n---\n# Title\n")

	fields, body, had, _, err := Read(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, false, fields["graph"])
	require.Equal(t, []any{"one"}, fields["tags"])
	require.Equal(t, []byte("# Title\n"), body)
}

func TestRead_MissingClosingDelimiter(t *testing.T) {
	_, _, _, _, err := Read([]byte("---\na: 1\n"))
	require.True(t, errors.Is(err, frontmatter.ErrMissingClosingDelimiter))
}

func TestWrite_OrderedFields(t *testing.T) {
	out, err := Write(frontmatter.Fields{
		{Key: "title", Value: frontmatter.Quoted("Books")},
		{Key: "sort_by", Value: "title"},
	}, []byte("body\n"))
	require.NoError(t, err)
	require.Equal(t, "---\ntitle: \"Books\"\nsort_by: title\n---\nbody\n", string(out))
}
