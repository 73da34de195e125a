package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

type scheduledJob interface {
	Start() error
	Stop(ctx context.Context)
}

type namedJob struct {
	name string
	job  scheduledJob
}

// JobManager starts and stops the background jobs as one group.
type JobManager struct {
	jobs    []namedJob
	started int
}

func NewJobManager(mover CourierMover, movementSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "courier movement", job: NewCourierMovementJob(mover, movementSchedule, logger)},
		},
	}
}

// StartAll starts jobs in order. If one fails the ones already running are
// stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.started = i
			jm.StopAll(context.Background())
			return fmt.Errorf("start %s job: %w", j.name, err)
		}
	}
	jm.started = len(jm.jobs)
	return nil
}

// StopAll stops started jobs in reverse order.
func (jm *JobManager) StopAll(ctx context.Context) {
	for i := jm.started - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop(ctx)
	}
	jm.started = 0
}
