package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/vaultsite/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	SiteFlags `embed:""`
	Every     time.Duration `help:"Also rebuild on this interval (0 disables)" default:"0s"`
	Quiet     time.Duration `help:"Wait this long after the last change before rebuilding" default:"500ms"`
	MaxDelay  time.Duration `name:"max-delay" help:"Rebuild at the latest this long after the first change" default:"5s"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := w.load(root.Config)
	if err != nil {
		return loadError(err)
	}
	s, err := newSession(cfg, w.SiteFlags, g.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	build := func(ctx context.Context) error {
		report, err := s.builder.Run(ctx)
		s.afterBuild(report)
		if err == nil {
			fmt.Println(report.Summary())
		}
		return err
	}
	if err := build(ctx); err != nil {
		return err
	}

	deb, err := watch.NewDebouncer(watch.DebouncerConfig{QuietWindow: w.Quiet, MaxDelay: w.MaxDelay})
	if err != nil {
		return err
	}
	watcher, err := watch.NewWatcher(cfg.Paths.Export, deb, g.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if w.Every > 0 {
		sched, err := watch.NewScheduler(w.Every, deb, g.Logger)
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				g.Logger.Warn("Scheduler shutdown failed", slog.Any("error", err))
			}
		}()
	}

	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error { return deb.Run(gctx) })
	grp.Go(func() error { return watcher.Run(gctx) })
	grp.Go(func() error { return watch.Serve(gctx, deb, build, g.Logger) })

	err = grp.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	g.Logger.Info("Watch stopped")
	return err
}
