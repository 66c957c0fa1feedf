package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// ExpiredEventDeleter removes events whose last date range is past retention.
type ExpiredEventDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Cleanup runs the expired-event sweep on a cron schedule.
type Cleanup struct {
	logger  *slog.Logger
	deleter ExpiredEventDeleter
	cron    *cron.Cron
	now     func() time.Time
}

// NewCleanup parses schedule (standard 5-field cron syntax, evaluated in UTC) and
// registers the sweep. It does not start the scheduler.
func NewCleanup(logger *slog.Logger, deleter ExpiredEventDeleter, schedule string) (*Cleanup, error) {
	c := &Cleanup{
		logger:  logger,
		deleter: deleter,
		cron:    cron.New(cron.WithLocation(time.UTC)),
		now:     time.Now,
	}
	if _, err := c.cron.AddFunc(schedule, func() { c.Run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("cleanup schedule %q: %w", schedule, err)
	}
	return c, nil
}

// Run performs one sweep and returns the number of deleted events.
func (c *Cleanup) Run(ctx context.Context) int64 {
	n, err := c.deleter.DeleteExpired(ctx, c.now())
	if err != nil {
		c.logger.ErrorContext(ctx, "expired event cleanup failed", "err", err)
		return 0
	}
	c.logger.InfoContext(ctx, "expired event cleanup", "deleted", n)
	return n
}

// Start runs the scheduler in its own goroutine.
func (c *Cleanup) Start() {
	c.cron.Start()
}

// Stop halts the scheduler and waits for a running sweep, or ctx, to finish.
func (c *Cleanup) Stop(ctx context.Context) {
	select {
	case <-c.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Next reports when the sweep runs next; zero before Start.
func (c *Cleanup) Next() time.Time {
	entries := c.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
