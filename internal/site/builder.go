// Package site walks an export tree and converts it into a site content tree:
// folders become section indexes, notes become pages, everything else is
// copied. After the walk it writes the graph and settings scripts.
package site

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/vaultsite/internal/config"
	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/git"
	"git.home.luguber.info/inful/vaultsite/internal/graph"
	"git.home.luguber.info/inful/vaultsite/internal/graphstore"
	"git.home.luguber.info/inful/vaultsite/internal/links"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
	"git.home.luguber.info/inful/vaultsite/internal/metrics"
	"git.home.luguber.info/inful/vaultsite/internal/output"
	"git.home.luguber.info/inful/vaultsite/internal/pages"
	"git.home.luguber.info/inful/vaultsite/internal/pathmap"
)

// Builder converts one export tree. A Builder may be run repeatedly; every
// run starts from fresh state.
type Builder struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
	store    graphstore.Store
	dates    pages.DateSource
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithRecorder reports run metrics to r.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// WithGraphStore saves every emitted graph to s.
func WithGraphStore(s graphstore.Store) Option {
	return func(b *Builder) { b.store = s }
}

// WithDateSource overrides where modification dates come from when
// frontmatter has none. By default GIT_DATES selects git history.
func WithDateSource(d pages.DateSource) Option {
	return func(b *Builder) { b.dates = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// run holds the per-run collaborators.
type run struct {
	*Builder
	logger    *slog.Logger
	mapper    *pathmap.Mapper
	processor *pages.Processor
	state     *pages.RunState
	report    *Report
	sections  int
}

// Run converts the export tree. The returned report is never nil.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	buildID := uuid.NewString()
	r := &run{
		Builder: b,
		logger:  b.logger.With(logfields.BuildID(buildID)),
		state:   pages.NewRunState(),
		report:  newReport(buildID, b.now()),
	}

	err := r.execute(ctx)
	outcome := OutcomeSuccess
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		outcome = OutcomeCanceled
	case err != nil:
		outcome = OutcomeFailed
	}
	r.report.finish(b.now(), outcome, err)

	b.recorder.ObserveBuildDuration(r.report.Duration())
	b.recorder.IncBuildOutcome(string(outcome))
	if err != nil {
		r.logger.Error("Build failed", logfields.Error(err))
		return r.report, err
	}
	r.logger.Info("Build complete",
		logfields.Count(r.report.Pages),
		slog.Int("resources", r.report.Resources),
		slog.Int("sections", r.report.Sections),
		slog.Int("broken_links", r.report.BrokenLinks),
		logfields.DurationMS(float64(r.report.Duration().Microseconds())/1000))
	return r.report, nil
}

func (r *run) execute(ctx context.Context) error {
	export := r.cfg.Paths.Export
	info, err := os.Stat(export)
	if err != nil || !info.IsDir() {
		return ferrors.FileSystemError("export directory not found").
			WithCause(err).WithContext("path", export).Build()
	}

	if err := r.substitute(); err != nil {
		return err
	}

	opts := r.cfg.Options
	r.mapper = pathmap.New(r.cfg.Paths.Content, pathmap.Options{
		Slugify:   opts.IsTrue(config.OptSlugify),
		Lowercase: opts.IsTrue(config.OptSlugifyLowercase),
	})
	resolver := links.NewResolver(r.cfg.Paths.Content, r.mapper, r.logger)
	r.processor = pages.NewProcessor(r.mapper, resolver, pages.Options{
		Routing:       r.cfg.Routing,
		SortBy:        opts.Get(config.OptSortBy),
		SkipCodeLinks: opts.IsTrue(config.OptSkipCodeLinks),
		Dates:         r.dateSource(),
	}, r.logger)

	r.logger.Info("Converting export", logfields.Path(export), logfields.Dest(r.cfg.Paths.Content))
	err = filepath.WalkDir(export, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return ferrors.WrapError(walkErr, ferrors.CategoryFileSystem, "failed to read export tree").
				Fatal().WithContext("path", p).Build()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		in, err := pathmap.NewInputPath(export, p, d.IsDir())
		if err != nil {
			return ferrors.InternalError("path outside export root").WithCause(err).
				WithContext("path", p).Build()
		}
		return r.visit(in)
	})
	if err != nil {
		return err
	}

	return r.finishGraph(ctx)
}

// visit handles one entry. The root is visited first and gets no index.
func (r *run) visit(in pathmap.InputPath) error {
	switch {
	case in.IsDir && in.Rel == "":
		return nil
	case in.IsDir:
		return r.writeSection(in)
	case in.IsMarkdown:
		return r.processPage(in)
	default:
		return r.copyResource(in)
	}
}

func (r *run) writeSection(in pathmap.InputPath) error {
	mp := r.mapper.Map(in)
	idx := directoryIndex(in, r.cfg.Options, r.cfg.Routing.Default.Section, r.sections)
	r.sections++

	doc, err := idx.Render()
	if err != nil {
		return ferrors.BuildError("failed to render section index").WithCause(err).
			WithContext("path", in.Rel).Build()
	}
	if _, err := output.WriteDocument(indexPath(mp), doc); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write section index").
			Fatal().WithContext("dest", mp.Rel).Build()
	}
	r.report.Sections++
	r.recorder.IncEntry(metrics.EntrySection)
	r.logger.Debug("Wrote section", logfields.Path(in.Rel), logfields.Dest(mp.Rel))
	return nil
}

func (r *run) processPage(in pathmap.InputPath) error {
	res, err := r.processor.Process(in, r.mapper.Map(in), r.state)
	if err != nil {
		return err
	}
	if res.Skipped {
		r.report.Skipped++
		r.recorder.IncEntry(metrics.EntrySkipped)
		return nil
	}
	if res.SectionCreated != "" {
		r.report.TagSections = append(r.report.TagSections, res.SectionCreated)
	}
	r.report.Pages++
	if !res.Written {
		r.report.Unchanged++
	}
	r.report.Links += len(res.Links)
	r.report.BrokenLinks += res.Broken
	r.recorder.IncEntry(metrics.EntryPage)
	r.recorder.AddLinks(len(res.Links)-res.Broken, res.Broken)
	r.logger.Debug("Wrote page", logfields.Path(in.Rel), logfields.URL(res.URL))
	return nil
}

func (r *run) copyResource(in pathmap.InputPath) error {
	mp := r.mapper.Map(in)
	if err := output.CopyFile(in.Abs, mp.Abs); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to copy resource").
			Fatal().WithContext("path", in.Rel).Build()
	}
	r.report.Resources++
	r.recorder.IncEntry(metrics.EntryResource)
	r.logger.Debug("Copied resource", logfields.Path(in.Rel), logfields.Dest(mp.Rel))
	return nil
}

func (r *run) finishGraph(ctx context.Context) error {
	acc := r.state.Graph
	g := graph.Build(acc, graph.Options{RootPath: graph.RootPath(r.cfg.Options.Get(config.OptSiteURL))})
	r.report.Nodes, r.report.Edges = len(g.Nodes), len(g.Edges)
	r.logger.Debug("Built graph",
		slog.Int("nodes", acc.NodeCount()),
		slog.Int("links_recorded", acc.EdgeCount()),
		slog.Int("edges", len(g.Edges)))
	r.recorder.SetGraphSize(len(g.Nodes), len(g.Edges))

	if err := r.writeGraph(g); err != nil {
		return err
	}
	if err := r.writeSettings(); err != nil {
		return err
	}
	if r.store != nil {
		if err := r.store.Save(ctx, r.report.BuildID, r.report.Start, g); err != nil {
			return ferrors.GraphError("failed to store graph snapshot").WithCause(err).Build()
		}
		r.logger.Debug("Stored graph snapshot")
	}
	return nil
}

// dateSource returns the configured date source, opening the git repository
// around the export when GIT_DATES is on. A missing repository only disables
// git dates.
func (r *run) dateSource() pages.DateSource {
	if r.dates != nil {
		return r.dates
	}
	if !r.cfg.Options.IsTrue(config.OptGitDates) {
		return nil
	}
	idx, err := git.OpenDateIndex(r.cfg.Paths.Export)
	if err != nil {
		r.logger.Warn("Git dates unavailable", logfields.Error(err))
		return nil
	}
	return idx
}
