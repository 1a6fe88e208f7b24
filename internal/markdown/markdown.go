// Package markdown holds line-level helpers shared by the page converter.
package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SplitLines splits text into lines that keep their line endings. Joining the
// result restores the input exactly.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(s, "\n")+1)
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// CodeLines reports, per line of body as split by SplitLines, whether the line
// belongs to the content of a fenced or indented code block.
func CodeLines(body []byte) []bool {
	lines := SplitLines(string(body))
	flags := make([]bool, len(lines))
	if len(lines) == 0 {
		return flags
	}

	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l)
	}
	lineAt := func(offset int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch n.Kind() {
		case gmast.KindFencedCodeBlock, gmast.KindCodeBlock:
			segs := n.Lines()
			for i := 0; i < segs.Len(); i++ {
				if idx := lineAt(segs.At(i).Start); idx >= 0 {
					flags[idx] = true
				}
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	return flags
}
