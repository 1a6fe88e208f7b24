package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	SiteFlags `embed:""`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := b.load(root.Config)
	if err != nil {
		return loadError(err)
	}
	s, err := newSession(cfg, b.SiteFlags, g.Logger)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := s.builder.Run(ctx)
	s.afterBuild(report)
	if err != nil {
		return err
	}
	fmt.Println(report.Summary())
	return nil
}
