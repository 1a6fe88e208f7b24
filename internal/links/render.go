package links

import (
	"fmt"
	"strings"
)

var (
	videoSuffixes = []string{".webm", ".mp4"}
	imageSuffixes = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg", ".bmp"}
)

// Render produces the replacement markup for occ resolved to u. Video is
// detected on the title, images on the raw target, both case-insensitively.
func Render(occ Occurrence, u string) string {
	switch {
	case hasSuffixFold(occ.Title, videoSuffixes):
		return fmt.Sprintf(`{{ video(url="%s", alt="%s") }}`, u, occ.Title)
	case hasSuffixFold(occ.Target, imageSuffixes):
		return fmt.Sprintf("![%s](%s)", occ.Title, u)
	default:
		return fmt.Sprintf(`{{ abs_url(abs="%s%s", text="%s") }}`, u, occ.Anchor, occ.Title)
	}
}

func hasSuffixFold(s string, suffixes []string) bool {
	lower := strings.ToLower(s)
	for _, suf := range suffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}
