// Package pages converts one exported note into a site page: it routes the
// page by tag, rewrites its links, records graph contributions and writes
// the result with fresh frontmatter.
package pages

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/vaultsite/internal/config"
	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/frontmatter"
	"git.home.luguber.info/inful/vaultsite/internal/frontmatterops"
	"git.home.luguber.info/inful/vaultsite/internal/links"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
	"git.home.luguber.info/inful/vaultsite/internal/markdown"
	"git.home.luguber.info/inful/vaultsite/internal/metadata"
	"git.home.luguber.info/inful/vaultsite/internal/output"
	"git.home.luguber.info/inful/vaultsite/internal/pathmap"
)

// Why a page produced no output.
const (
	SkipEmpty     = "empty"
	SkipUnmatched = "unmatched"
)

var (
	createdKeys  = []string{"created", "date created"}
	modifiedKeys = []string{"modified", "date modified", "updated"}
)

// DateSource supplies a modification time when frontmatter has none.
type DateSource interface {
	LastModified(absPath string) (time.Time, bool, error)
}

// Options configure a Processor.
type Options struct {
	Routing       config.RoutingConfig
	SortBy        string
	SkipCodeLinks bool
	Metadata      *metadata.Registry
	Dates         DateSource // optional
}

// Result describes what happened to one page.
type Result struct {
	Skipped        bool
	SkipReason     string
	Mapping        pathmap.Mapping
	URL            string
	Links          []string
	Broken         int
	Written        bool
	SectionCreated string
}

// Processor converts markdown notes.
type Processor struct {
	mapper   *pathmap.Mapper
	resolver *links.Resolver
	opts     Options
	logger   *slog.Logger
}

// NewProcessor wires a Processor.
func NewProcessor(mapper *pathmap.Mapper, resolver *links.Resolver, opts Options, logger *slog.Logger) *Processor {
	if opts.Metadata == nil {
		opts.Metadata = metadata.DefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{mapper: mapper, resolver: resolver, opts: opts, logger: logger}
}

// Process converts in, whose directory-derived destination is mp.
func (p *Processor) Process(in pathmap.InputPath, mp pathmap.Mapping, st *RunState) (Result, error) {
	log := p.logger.With(logfields.Path(in.Rel))

	raw, err := os.ReadFile(in.Abs)
	if err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to read page").
			Fatal().WithContext("path", in.Rel).Build()
	}
	fields, body := p.split(raw, log)

	lines := markdown.SplitLines(string(body))
	if len(lines) < 2 {
		return skip(log, mp, SkipEmpty, ferrors.DocumentError("Skipping empty page").
			WithContext(logfields.KeyLines, len(lines)).Build()), nil
	}

	section, routed := p.opts.Routing.SectionFor(frontmatterops.Tags(fields))
	if !routed && p.opts.Routing.Unmatched == config.UnmatchedSkip {
		return skip(log, mp, SkipUnmatched, ferrors.DocumentError("Skipping page without a routed tag").Build()), nil
	}
	templates := p.opts.Routing.TemplatesFor(section)

	res := Result{Mapping: mp}
	if routed {
		res.Mapping = p.mapper.WithSection(mp, section)
		if !st.Sections[section] {
			if err := p.writeTagSection(section, templates.Section); err != nil {
				return Result{}, err
			}
			st.Sections[section] = true
			res.SectionCreated = section
		}
	}
	res.URL = pathmap.PageURL(res.Mapping)
	title := pageTitle(in.Abs)
	log.Debug("Routing page", logfields.Title(title), logfields.Dest(res.Mapping.Rel), logfields.URL(res.URL))

	inGraph := frontmatterops.GraphEnabled(fields)
	if inGraph {
		st.Graph.AddNode(res.URL, title)
	}

	src := links.Source{Rel: in.Rel, DestDir: filepath.Dir(res.Mapping.Abs)}
	var code []bool
	if p.opts.SkipCodeLinks {
		code = markdown.CodeLines(body)
	}

	var out strings.Builder
	out.WriteString(p.opts.Metadata.Render(fields))
	res.Links = []string{}
	for i, line := range lines {
		if i < len(code) && code[i] {
			out.WriteString(line)
			continue
		}
		parsed, linked := p.resolver.Parse(line, src)
		out.WriteString(doubleLineBreak(parsed))
		for _, u := range linked {
			if u == links.NotFoundURL {
				res.Broken++
			}
			if inGraph {
				st.Graph.AddEdge(res.URL, u)
			}
		}
		res.Links = append(res.Links, linked...)
	}

	created, updated := p.dates(in.Abs, fields, log)
	doc, err := frontmatterops.Write(frontmatter.Fields{
		{Key: "title", Value: frontmatter.Quoted(title)},
		{Key: "date", Value: frontmatter.Timestamp(created)},
		{Key: "updated", Value: frontmatter.Timestamp(updated)},
		{Key: "template", Value: templates.Page},
		{Key: "extra", Value: frontmatter.Fields{{Key: "prerender", Value: frontmatter.FlowList(res.Links)}}},
	}, []byte(out.String()))
	if err != nil {
		return Result{}, ferrors.BuildError("failed to render page").WithCause(err).
			WithContext("path", in.Rel).Build()
	}

	written, err := output.WriteDocument(res.Mapping.Abs, doc)
	if err != nil {
		return Result{}, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write page").
			Fatal().WithContext("dest", res.Mapping.Rel).Build()
	}
	res.Written = written
	return res, nil
}

// skip logs the per-document condition that keeps a page out of the output.
func skip(log *slog.Logger, mp pathmap.Mapping, reason string, cond *ferrors.ClassifiedError) Result {
	log.LogAttrs(context.Background(), slog.LevelInfo, cond.Message(), cond.LogAttrs()...)
	return Result{Skipped: true, SkipReason: reason, Mapping: mp}
}

// split separates frontmatter from body. A block without a closing delimiter
// is treated as body; unparsable YAML yields no fields.
func (p *Processor) split(raw []byte, log *slog.Logger) (map[string]any, []byte) {
	fm, body, _, _, err := frontmatter.Split(raw)
	if errors.Is(err, frontmatter.ErrMissingClosingDelimiter) {
		log.Debug("Frontmatter never closed, treating as body")
		return map[string]any{}, raw
	}
	fields, err := frontmatter.ParseYAML(fm)
	if err != nil {
		log.Warn("Ignoring invalid frontmatter", logfields.Error(err))
		return map[string]any{}, body
	}
	return fields, body
}

func (p *Processor) writeTagSection(section, template string) error {
	idx := SectionIndex{
		Title:    cases.Title(language.Und).String(section),
		Template: template,
		SortBy:   p.opts.SortBy,
		Sidebar:  section,
	}
	doc, err := idx.Render()
	if err != nil {
		return ferrors.BuildError("failed to render section index").WithCause(err).
			WithContext("section", section).Build()
	}
	dest := filepath.Join(p.mapper.ContentRoot(), section, "_index.md")
	if _, err := output.WriteDocument(dest, doc); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write section index").
			Fatal().WithContext("section", section).Build()
	}
	p.logger.Info("Created tag section", logfields.Section(section))
	return nil
}

// dates returns the normalized creation and modification dates. Modification
// falls back to frontmatter aliases, then git history, then file mtime.
// Creation falls back to modification.
func (p *Processor) dates(abs string, fields map[string]any, log *slog.Logger) (created, updated string) {
	updated, ok := frontmatterops.FirstDate(fields, modifiedKeys...)
	if !ok && p.opts.Dates != nil {
		when, found, err := p.opts.Dates.LastModified(abs)
		if err != nil {
			log.Debug("No git date", logfields.Error(err))
		}
		if found {
			updated, ok = frontmatterops.FormatDate(when.UTC()), true
		}
	}
	if !ok {
		updated = frontmatterops.FormatDate(modTime(abs).UTC())
	}

	created, ok = frontmatterops.FirstDate(fields, createdKeys...)
	if !ok {
		created = updated
	}
	return created, updated
}

func modTime(abs string) time.Time {
	info, err := os.Stat(abs)
	if err != nil {
		return time.Now()
	}
	return info.ModTime()
}

// pageTitle is the source file name without its extension.
func pageTitle(abs string) string {
	base := filepath.Base(abs)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// doubleLineBreak doubles a trailing `\\` (optionally followed by spaces) so
// the renderer keeps it as a hard break. The line ending is kept.
func doubleLineBreak(line string) string {
	content := strings.TrimRight(line, "\r\n")
	ending := line[len(content):]
	trimmed := strings.TrimRightFunc(content, unicode.IsSpace)
	if !strings.HasSuffix(trimmed, `\\`) {
		return line
	}
	return trimmed + `\\` + ending
}
