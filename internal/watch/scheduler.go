package watch

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
)

// Scheduler requests a rebuild on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// NewScheduler schedules a rebuild request every interval.
func NewScheduler(every time.Duration, deb *Debouncer, logger *slog.Logger) (*Scheduler, error) {
	if every <= 0 {
		return nil, ferrors.ValidationError("rebuild interval must be > 0").Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create scheduler").Build()
	}
	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(deb.Request, "schedule"),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, ferrors.WrapError(err, ferrors.CategoryRuntime, "failed to create periodic rebuild job").Build()
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start begins the schedule.
func (s *Scheduler) Start() {
	s.logger.Info("Starting rebuild scheduler")
	s.scheduler.Start()
}

// Stop shuts the scheduler down, waiting for a running job.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping rebuild scheduler")
	return s.scheduler.Shutdown()
}
