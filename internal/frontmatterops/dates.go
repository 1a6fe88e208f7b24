package frontmatterops

import (
	"strings"
	"time"
)

// DateLayout is the strict date-time shape written to output frontmatter.
const DateLayout = "2006-01-02T15:04:05-07:00"

// Input layouts, most specific first. Values without a zone parse as UTC.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// NormalizeDate turns a date-like frontmatter value into DateLayout.
// Missing seconds become :00, a missing zone becomes +00:00 and a bare date
// gets midnight. ok is false when the value is not date-like.
func NormalizeDate(v any) (string, bool) {
	switch vv := v.(type) {
	case time.Time:
		return FormatDate(vv), true
	case string:
		return normalizeDateString(vv)
	default:
		return "", false
	}
}

// FormatDate formats t with its own offset.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func normalizeDateString(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	// YAML allows a space between date and time.
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + strings.TrimSpace(s[11:])
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return FormatDate(t), true
		}
	}
	return "", false
}
