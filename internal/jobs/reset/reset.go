package reset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SyncBAND/besteats/internal/domain/rules"
)

type QuotaResetter interface {
	ResetAll(ctx context.Context, capacity int) (int64, error)
}

type CapacityProvider interface {
	DailyVoteCapacity(ctx context.Context) (int, error)
}

// DayLocker grants the reset to one instance per day.
type DayLocker interface {
	AcquireDay(ctx context.Context, dayKey string) (bool, error)
}

type Dependencies struct {
	Quotas   QuotaResetter
	Capacity CapacityProvider
	Locker   DayLocker
	Logger   *zap.Logger
}

// Job restores every user's quota to capacity at local midnight. With
// several API instances running, the day lock keeps the reset to exactly
// one of them; without a locker the job runs unguarded, which is fine for a
// single instance since the reset itself is idempotent.
type Job struct {
	deps Dependencies
	loc  *time.Location
	now  func() time.Time
}

func NewJob(deps Dependencies, loc *time.Location) *Job {
	if loc == nil {
		loc = time.UTC
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Job{deps: deps, loc: loc, now: time.Now}
}

// Run sleeps until each local midnight and performs the reset. It returns
// when the context is cancelled.
func (j *Job) Run(ctx context.Context) {
	for {
		next := rules.NextResetAt(j.now().UTC(), j.loc)
		wait := time.Until(next)

		j.deps.Logger.Info("quota reset scheduled",
			zap.Time("at", next),
			zap.Duration("in", wait),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := j.RunOnce(ctx); err != nil {
			j.deps.Logger.Error("quota reset failed", zap.Error(err))
		}
	}
}

// RunOnce performs a single reset cycle for the current local day.
func (j *Job) RunOnce(ctx context.Context) error {
	dayKey := rules.DayKey(j.now().UTC(), j.loc)

	if j.deps.Locker != nil {
		acquired, err := j.deps.Locker.AcquireDay(ctx, dayKey)
		if err != nil {
			return fmt.Errorf("acquire reset lock: %w", err)
		}
		if !acquired {
			j.deps.Logger.Info("quota reset already done", zap.String("day", dayKey))
			return nil
		}
	}

	capacity, err := j.deps.Capacity.DailyVoteCapacity(ctx)
	if err != nil {
		return fmt.Errorf("resolve vote capacity: %w", err)
	}

	affected, err := j.deps.Quotas.ResetAll(ctx, capacity)
	if err != nil {
		return fmt.Errorf("reset quotas: %w", err)
	}

	j.deps.Logger.Info("quota reset done",
		zap.String("day", dayKey),
		zap.Int("capacity", capacity),
		zap.Int64("users", affected),
	)

	return nil
}
