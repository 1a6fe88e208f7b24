package links

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Occurrence is one internal link found in a line.
type Occurrence struct {
	Match  string // full text, "[" through ")"
	Title  string
	Target string // path part, without ".md" and anchor
	MD     bool   // target carried a ".md" suffix
	Anchor string // "#..." or ""
	Start  int    // byte offsets of Match in the line
	End    int
}

// Scan finds internal links of the form [title](target) in line, left to
// right. Targets starting with "http" are skipped. Scanning resumes after
// each match, so matches never overlap.
//
// Title is the shortest text up to a "](". Target is the shortest run of
// non-space characters followed by an optional ".md", an optional "#anchor"
// and a closing ")". A match whose inner text itself opens with a complete
// [..](..) link is dropped.
func Scan(line string) []Occurrence {
	var out []Occurrence
	for i := 0; i < len(line); {
		rel := strings.IndexByte(line[i:], '[')
		if rel < 0 {
			break
		}
		i += rel

		occ, ok := matchAt(line, i)
		if !ok {
			i++
			continue
		}
		if !opensWithLink(line[occ.Start+1 : occ.End-1]) {
			out = append(out, occ)
		}
		i = occ.End
	}
	return out
}

// matchAt tries every title end in turn, shortest first.
func matchAt(line string, start int) (Occurrence, bool) {
	for t := start + 1; t+1 < len(line); t++ {
		if line[t] == '\n' {
			break
		}
		if line[t] != ']' || line[t+1] != '(' {
			continue
		}
		p := t + 2
		if strings.HasPrefix(line[p:], "http") {
			continue
		}
		if occ, ok := matchTarget(line, p); ok {
			occ.Start = start
			occ.Title = line[start+1 : t]
			occ.Match = line[start:occ.End]
			return occ, true
		}
	}
	return Occurrence{}, false
}

// matchTarget grows the target one rune at a time. At each length a ".md"
// suffix is tried before none.
func matchTarget(line string, p int) (Occurrence, bool) {
	u := p
	for {
		if strings.HasPrefix(line[u:], ".md") {
			if end, anchor, ok := matchTail(line, u+3); ok {
				return Occurrence{Target: line[p:u], MD: true, Anchor: anchor, End: end}, true
			}
		}
		if end, anchor, ok := matchTail(line, u); ok {
			return Occurrence{Target: line[p:u], Anchor: anchor, End: end}, true
		}
		if u >= len(line) {
			return Occurrence{}, false
		}
		r, size := utf8.DecodeRuneInString(line[u:])
		if unicode.IsSpace(r) {
			return Occurrence{}, false
		}
		u += size
	}
}

// matchTail accepts "#anchor)" or ")" at q. The anchor is the longest
// non-space run that still leaves a ")" right after it.
func matchTail(line string, q int) (end int, anchor string, ok bool) {
	if q >= len(line) {
		return 0, "", false
	}
	if line[q] == '#' {
		e := spaceFreeEnd(line, q+1)
		if e >= q+2 {
			if k := strings.LastIndexByte(line[q+2:e], ')'); k >= 0 {
				k += q + 2
				return k + 1, line[q:k], true
			}
		}
	}
	if line[q] == ')' {
		return q + 1, "", true
	}
	return 0, "", false
}

func spaceFreeEnd(s string, from int) int {
	i := from
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsSpace(r) {
			break
		}
		i += size
	}
	return i
}

// opensWithLink reports whether inner starts with "[", some title, "](", and
// a space-free run containing ")".
func opensWithLink(inner string) bool {
	if !strings.HasPrefix(inner, "[") {
		return false
	}
	for j := 1; j+1 < len(inner); j++ {
		if inner[j] == '\n' {
			return false
		}
		if inner[j] != ']' || inner[j+1] != '(' {
			continue
		}
		if strings.Contains(inner[j+2:spaceFreeEnd(inner, j+2)], ")") {
			return true
		}
	}
	return false
}
