package jobs

import (
	"context"
	"log/slog"

	"foodorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultMovementSchedule fires every two seconds.
const DefaultMovementSchedule = "*/2 * * * * *"

// CourierMover advances every courier still on its way.
type CourierMover interface {
	Handle(ctx context.Context, cmd commands.MoveCouriersCommand) error
}

// CourierMovementJob moves tracked couriers toward their customers. It never
// changes an order's status: arrival only shows on the map.
type CourierMovementJob struct {
	mover    CourierMover
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCourierMovementJob accepts a six-field cron schedule (with seconds). An
// empty schedule means DefaultMovementSchedule.
func NewCourierMovementJob(mover CourierMover, schedule string, logger *slog.Logger) *CourierMovementJob {
	if schedule == "" {
		schedule = DefaultMovementSchedule
	}
	return &CourierMovementJob{
		mover:    mover,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "courier_movement_job"),
	}
}

func (j *CourierMovementJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Courier movement job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single tick. Failures are logged; the next tick retries.
func (j *CourierMovementJob) RunOnce() {
	ctx := context.Background()
	if err := j.mover.Handle(ctx, commands.NewMoveCouriersCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Courier movement job failed", "error", err)
	}
}

// Stop waits for a running tick to finish or ctx to expire.
func (j *CourierMovementJob) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
	j.logger.InfoContext(ctx, "Courier movement job stopped")
}
