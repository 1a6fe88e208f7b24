// Package links rewrites internal note links into site URLs.
package links

import (
	"errors"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
	"git.home.luguber.info/inful/vaultsite/internal/markdown"
	"git.home.luguber.info/inful/vaultsite/internal/pathmap"
)

// NotFoundURL replaces every link that cannot be resolved.
const NotFoundURL = "/404"

var (
	ErrEmptyTarget = errors.New("empty link target")
	ErrBadEscape   = errors.New("undecodable link target")
	ErrOutsideRoot = errors.New("link target outside content root")
)

// Slugger applies the site's slug rules to a content-relative path.
type Slugger interface {
	SlugifyPath(rel string, isDir bool) string
}

// Source identifies the document a line comes from.
type Source struct {
	Rel     string // export-relative path, for logs
	DestDir string // absolute directory the document is written to
}

// Resolver turns link targets into absolute site URLs.
type Resolver struct {
	content string
	slug    Slugger
	logger  *slog.Logger
}

// NewResolver returns a Resolver for the given content root.
func NewResolver(contentRoot string, slug Slugger, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{content: filepath.Clean(contentRoot), slug: slug, logger: logger}
}

// Resolve maps a raw target onto a site URL. Targets are relative to the
// source's destination directory, or to the content root when they start with
// "/". The error is a warning-level link error.
func (r *Resolver) Resolve(target string, src Source) (string, error) {
	if target == "" {
		return NotFoundURL, linkError(ErrEmptyTarget, target, src)
	}
	decoded, err := url.PathUnescape(target)
	if err != nil {
		return NotFoundURL, linkError(errors.Join(ErrBadEscape, err), target, src)
	}

	base := src.DestDir
	if strings.HasPrefix(decoded, "/") {
		base = r.content
	}
	abs := filepath.Join(base, filepath.FromSlash(decoded))
	rel, err := filepath.Rel(r.content, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NotFoundURL, linkError(ErrOutsideRoot, target, src)
	}
	if rel == "." {
		return "/", nil
	}
	return pathmap.EscapePath(r.slug.SlugifyPath(filepath.ToSlash(rel), false)), nil
}

// Parse rewrites every internal link in line and returns the resolved URLs in
// match order. Unresolvable links become NotFoundURL and are logged.
func (r *Resolver) Parse(line string, src Source) (string, []string) {
	occs := Scan(line)
	if len(occs) == 0 {
		return line, nil
	}

	urls := make([]string, 0, len(occs))
	edits := make([]markdown.Edit, 0, len(occs))
	for _, occ := range occs {
		u, err := r.Resolve(occ.Target, src)
		if err != nil {
			r.logger.Warn("Unresolvable link", append([]any{logfields.Path(src.Rel), logfields.Target(occ.Match)}, attrsOf(err)...)...)
		}
		urls = append(urls, u)
		edits = append(edits, markdown.Edit{Start: occ.Start, End: occ.End, Replacement: Render(occ, u)})
	}

	out, err := markdown.ApplyEdits(line, edits)
	if err != nil {
		// Scan never yields overlapping ranges.
		r.logger.Error("Link rewrite failed", logfields.Path(src.Rel), logfields.Error(err))
		return line, urls
	}
	return out, urls
}

func linkError(cause error, target string, src Source) error {
	return ferrors.LinkError("link not resolved").
		WithCause(cause).
		WithContext("target", target).
		WithContext("source", src.Rel).
		Build()
}

func attrsOf(err error) []any {
	ce, ok := ferrors.AsClassified(err)
	if !ok {
		return []any{logfields.Error(err)}
	}
	attrs := ce.LogAttrs()
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}
