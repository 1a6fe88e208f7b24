package markdown

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Edit replaces line[Start:End] with Replacement. Offsets are bytes into the
// original text, End exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ApplyEdits applies non-overlapping byte-range edits to text. Everything
// outside the edited ranges is kept verbatim.
func ApplyEdits(text string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start == sorted[j].Start {
			return sorted[i].End < sorted[j].End
		}
		return sorted[i].Start < sorted[j].Start
	})

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for i, e := range sorted {
		if e.Start < 0 || e.End < e.Start {
			return "", fmt.Errorf("invalid edit[%d]: bad range %d..%d", i, e.Start, e.End)
		}
		if e.End > len(text) {
			return "", fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		}
		if e.Start < pos {
			return "", errors.New("invalid edits: overlapping ranges")
		}
		b.WriteString(text[pos:e.Start])
		b.WriteString(e.Replacement)
		pos = e.End
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}
