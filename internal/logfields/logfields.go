package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyBuildID    = "build_id"
	KeyPath       = "path"
	KeyDest       = "dest"
	KeySection    = "section"
	KeyTitle      = "title"
	KeyURL        = "url"
	KeyTarget     = "target"
	KeyCount      = "count"
	KeyLines      = "lines"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Granular helpers returning slog.Attr so callers can compose them.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Dest(p string) slog.Attr         { return slog.String(KeyDest, p) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
