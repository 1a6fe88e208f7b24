package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// Style captures the newline shape of a document so output can follow it.
type Style struct {
	Newline            string
	HasTrailingNewline bool
}

// ErrMissingClosingDelimiter indicates the document opened a frontmatter block
// but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter from the body. A delimiter is a line that
// reads `---` once trailing whitespace is removed.
//
// If the first line is not a delimiter, had is false and body is the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = detectStyle(content)

	first, rest, _ := cutLine(content)
	if !isDelimiter(first) {
		return nil, content, false, style, nil
	}

	start := len(content) - len(rest)
	pos := start
	for pos < len(content) {
		line, next, _ := cutLine(content[pos:])
		if isDelimiter(line) {
			bodyStart := len(content) - len(next)
			return content[start:pos], content[bodyStart:], true, style, nil
		}
		pos = len(content) - len(next)
	}
	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw frontmatter and body.
func Join(frontmatter []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}
	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	out := make([]byte, 0, len(frontmatter)+len(body)+2*(3+len(nl)))
	out = append(out, "---"+nl...)
	out = append(out, frontmatter...)
	out = append(out, "---"+nl...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw YAML frontmatter (without delimiters) into a map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(frontmatter)) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func cutLine(b []byte) (line, rest []byte, found bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == "---"
}

func detectStyle(content []byte) Style {
	newline := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		newline = "\r\n"
	}
	return Style{
		Newline:            newline,
		HasTrailingNewline: len(content) > 0 && content[len(content)-1] == '\n',
	}
}
