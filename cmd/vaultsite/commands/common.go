// Package commands implements the vaultsite command line.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/vaultsite/internal/config"
	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/graphstore"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
	"git.home.luguber.info/inful/vaultsite/internal/metrics"
	"git.home.luguber.info/inful/vaultsite/internal/site"
)

// Global is shared state handed to every command.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command and its global flags.
type CLI struct {
	Config  string `short:"c" help:"Optional YAML configuration file" type:"path"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build   BuildCmd   `cmd:"" default:"1" help:"Convert the export into the site content tree"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild whenever the export changes"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// AfterApply runs after flag parsing and sets up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(newLogger(c.Verbose))
	return nil
}

// newLogger honours VAULTSITE_LOG_LEVEL unless -v asks for debug output.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	} else if raw := os.Getenv("VAULTSITE_LOG_LEVEL"); raw != "" {
		var parsed slog.Level
		if err := parsed.UnmarshalText([]byte(strings.ToUpper(raw))); err == nil {
			level = parsed
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SiteFlags are shared by build and watch.
type SiteFlags struct {
	Site            string `help:"Site directory, overrides paths.site" type:"path"`
	Export          string `help:"Export directory, overrides paths.export" type:"path"`
	Content         string `help:"Content directory, overrides paths.content" type:"path"`
	MetricsTextfile string `name:"metrics-textfile" help:"Write Prometheus metrics to this file after every build" type:"path"`
	GraphDB         string `name:"graph-db" help:"Store every emitted graph in this SQLite database (overrides GRAPH_DB)" type:"path"`
	ReportDir       string `name:"report-dir" help:"Write build-report.json and build-report.txt here" type:"path"`
}

func (f SiteFlags) load(configPath string) (*config.Config, error) {
	return config.LoadOverriding(configPath, config.PathsConfig{Site: f.Site, Export: f.Export, Content: f.Content})
}

// session wires a Builder with the optional metrics and graph store.
type session struct {
	flags    SiteFlags
	builder  *site.Builder
	recorder *metrics.PrometheusRecorder
	store    graphstore.Store
	logger   *slog.Logger
}

func newSession(cfg *config.Config, flags SiteFlags, logger *slog.Logger) (*session, error) {
	s := &session{flags: flags, logger: logger}
	opts := []site.Option{site.WithLogger(logger)}

	if flags.MetricsTextfile != "" {
		s.recorder = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		opts = append(opts, site.WithRecorder(s.recorder))
	}

	dbPath := flags.GraphDB
	if dbPath == "" {
		dbPath = cfg.Options.Get(config.OptGraphDB)
	}
	if dbPath != "" {
		store, err := graphstore.NewSQLiteStore(dbPath)
		if err != nil {
			return nil, err
		}
		s.store = store
		opts = append(opts, site.WithGraphStore(store))
	}

	s.builder = site.NewBuilder(cfg, opts...)
	return s, nil
}

// afterBuild writes the optional report and metrics files. Failures here
// are logged and never mask the build result.
func (s *session) afterBuild(report *site.Report) {
	if s.flags.ReportDir != "" && report != nil {
		if err := report.Persist(s.flags.ReportDir); err != nil {
			s.logger.Warn("Failed to write build report", logfields.Error(err))
		}
	}
	if s.recorder != nil {
		if err := s.recorder.WriteTextfile(s.flags.MetricsTextfile); err != nil {
			s.logger.Warn("Failed to write metrics textfile", logfields.Path(s.flags.MetricsTextfile), logfields.Error(err))
		}
	}
}

func (s *session) Close() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("Failed to close graph store", logfields.Error(err))
	}
}

func loadError(err error) error {
	if _, ok := ferrors.AsClassified(err); ok {
		return err
	}
	return ferrors.WrapError(err, ferrors.CategoryConfig, "load config").Fatal().Build()
}
