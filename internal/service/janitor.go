package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrNoPruners = errors.New("no session stores to prune")

// SessionPruner drops sessions idle since before cutoff and reports how many went.
type SessionPruner interface {
	PruneIdle(cutoff time.Time) int
}

// SessionJanitor periodically drops sessions nobody has touched for a while.
type SessionJanitor struct {
	pruners  []SessionPruner
	idle     time.Duration
	schedule string
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionJanitor creates a janitor running on a cron schedule
// such as "@every 5m".
func NewSessionJanitor(schedule string, idle time.Duration, logger *zap.Logger, pruners ...SessionPruner) *SessionJanitor {
	return &SessionJanitor{
		pruners:  pruners,
		idle:     idle,
		schedule: schedule,
		now:      time.Now,
		logger:   logger,
	}
}

// Start runs the pruning job until ctx is done.
func (j *SessionJanitor) Start(ctx context.Context) error {
	if len(j.pruners) == 0 {
		return ErrNoPruners
	}

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		j.Prune()
	})
	if err != nil {
		return fmt.Errorf("add prune job %q: %w", j.schedule, err)
	}

	c.Start()
	j.logger.Info("session janitor started", zap.String("schedule", j.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")

	return nil
}

// Prune drops idle sessions from every store once.
func (j *SessionJanitor) Prune() int {
	cutoff := j.now().Add(-j.idle)

	total := 0
	for _, p := range j.pruners {
		total += p.PruneIdle(cutoff)
	}

	if total > 0 {
		j.logger.Info("idle sessions pruned", zap.Int("count", total))
	}

	return total
}
