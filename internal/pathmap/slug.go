package pathmap

import (
	"path"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify reduces one path segment to [A-Za-z0-9-]. Accents are folded away,
// other scripts are transliterated to ASCII, apostrophes dropped and every
// other run of characters becomes a single "-". The result may be empty.
func Slugify(segment string, lowercase bool) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, segment)
	if err != nil {
		folded = segment
	}
	folded = unidecode.Unidecode(folded)
	if lowercase {
		folded = strings.ToLower(folded)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		switch {
		case r == '\'' || r == '’':
			continue
		case r == '-' || isASCIIAlnum(r):
			if r == '-' {
				pendingDash = true
				continue
			}
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// SlugifyPath slugifies a slash-separated relative path segment by segment.
//
// Directories and URLs have every segment slugified. For files the stem is
// split on "." with every part slugified, and the final extension is kept
// verbatim. Segments that slugify to nothing are dropped.
func SlugifyPath(rel string, isDir, lowercase bool) string {
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return ""
	}

	if isDir {
		return joinSlugs(strings.Split(rel, "/"), lowercase)
	}

	dir, name := path.Split(rel)
	ext := path.Ext(name)
	if ext == name || ext == "." {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)

	parts := strings.Split(stem, ".")
	for i, p := range parts {
		parts[i] = Slugify(p, lowercase)
	}
	file := strings.Join(parts, ".")
	if file == "" && ext == "" {
		return joinSlugs(strings.Split(dir, "/"), lowercase)
	}
	return path.Join(joinSlugs(strings.Split(dir, "/"), lowercase), file+ext)
}

func joinSlugs(segments []string, lowercase bool) string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if slug := Slugify(s, lowercase); slug != "" {
			out = append(out, slug)
		}
	}
	return path.Join(out...)
}
