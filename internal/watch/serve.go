package watch

import (
	"context"
	"errors"
	"log/slog"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/logfields"
)

// BuildFunc runs one rebuild.
type BuildFunc func(ctx context.Context) error

// Serve runs build for every trigger, one at a time, until ctx is done. Build
// failures are logged and serving continues, except for fatal configuration
// errors which cannot heal without a restart.
func Serve(ctx context.Context, deb *Debouncer, build BuildFunc, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case trig := <-deb.Triggers():
			logger.Info("Rebuilding",
				slog.String("cause", trig.Cause),
				slog.String("reason", trig.LastReason),
				logfields.Count(trig.Requests))
			err := build(ctx)
			switch {
			case err == nil:
			case errors.Is(err, context.Canceled) && ctx.Err() != nil:
				return nil
			case fatalConfig(err):
				return err
			default:
				logger.Error("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func fatalConfig(err error) bool {
	classified, ok := ferrors.AsClassified(err)
	return ok && classified.Category() == ferrors.CategoryConfig && classified.IsFatal()
}
