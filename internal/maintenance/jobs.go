package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// TokenStore is the subset of the sqlite store needed by the purge job.
// Defined here to avoid a dependency on the storage package.
type TokenStore interface {
	PurgeTokens(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenPurgeJob deletes auth tokens that have not been used within TTL.
type TokenPurgeJob struct {
	Store        TokenStore
	TTL          time.Duration
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "@hourly"
}

// Compile-time interface check.
var _ Job = (*TokenPurgeJob)(nil)

// Name implements Job.
func (j *TokenPurgeJob) Name() string { return "token_purge" }

// Schedule implements Job.
func (j *TokenPurgeJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "@hourly"
}

// Run deletes tokens idle longer than TTL. A zero TTL disables purging.
func (j *TokenPurgeJob) Run(ctx context.Context) error {
	if j.TTL <= 0 {
		return nil
	}
	purged, err := j.Store.PurgeTokens(ctx, time.Now().Add(-j.TTL))
	if err != nil {
		return fmt.Errorf("maintenance: purging tokens: %w", err)
	}
	if purged > 0 {
		j.Logger.Info("maintenance: purged expired tokens", "count", purged)
	}
	return nil
}

// Checkpointer is the subset of the sqlite store needed by the checkpoint job.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointJob truncates the WAL and runs the query optimizer so the
// database file does not grow unbounded under continuous writes.
type CheckpointJob struct {
	Store        Checkpointer
	Logger       *slog.Logger
	ScheduleExpr string // empty = default "@daily"
}

// Compile-time interface check.
var _ Job = (*CheckpointJob)(nil)

// Name implements Job.
func (j *CheckpointJob) Name() string { return "db_checkpoint" }

// Schedule implements Job.
func (j *CheckpointJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "@daily"
}

// Run implements Job.
func (j *CheckpointJob) Run(ctx context.Context) error {
	if err := j.Store.Checkpoint(ctx); err != nil {
		return fmt.Errorf("maintenance: checkpointing database: %w", err)
	}
	j.Logger.Debug("maintenance: database checkpoint complete")
	return nil
}
