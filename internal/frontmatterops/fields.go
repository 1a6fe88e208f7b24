package frontmatterops

import (
	"fmt"
	"strings"
	"time"
)

// Tags returns the `tags` field as a list. A single string counts as one tag.
func Tags(fields map[string]any) []string {
	switch v := fields["tags"].(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			return []string{s}
		}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// GraphEnabled reports whether the page participates in the link graph.
// Only an explicit false opts out.
func GraphEnabled(fields map[string]any) bool {
	switch v := fields["graph"].(type) {
	case bool:
		return v
	case string:
		return !strings.EqualFold(strings.TrimSpace(v), "false")
	default:
		return true
	}
}

// FirstDate returns the first key in keys whose value normalizes to a date.
func FirstDate(fields map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok || v == nil {
			continue
		}
		if date, ok := NormalizeDate(v); ok {
			return date, true
		}
	}
	return "", false
}

// String renders a scalar frontmatter value the way it reads in the source.
func String(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case time.Time:
		return FormatDate(vv)
	default:
		return fmt.Sprint(vv)
	}
}
