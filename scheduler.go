package notepub

import (
	"context"
)

// Scheduler runs a job at most once at a time. Triggers that arrive while the
// job is running collapse into a single follow-up run.
type Scheduler struct {
	job     func(context.Context)
	pending chan struct{}
}

// NewScheduler returns a Scheduler for job.
func NewScheduler(job func(context.Context)) *Scheduler {
	return &Scheduler{job: job, pending: make(chan struct{}, 1)}
}

// Trigger requests a run. It never blocks.
func (s *Scheduler) Trigger() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

// Run executes requested jobs until ctx is done. It returns only after the
// current job has returned.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.pending:
			s.job(ctx)
		}
	}
}

// PublishJob adapts a Publisher to a Scheduler job. Cycle errors are logged
// and never stop the scheduler.
func PublishJob(p *Publisher) func(context.Context) {
	return func(ctx context.Context) {
		if _, err := p.Publish(ctx); err != nil {
			p.logger.Errorf("publish failed: %v", err)
		}
	}
}
