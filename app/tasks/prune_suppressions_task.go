package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lysyi3m/feed-comb/app/database"
)

// PruneSuppressionsTask drops journal entries older than the retention window.
type PruneSuppressionsTask struct {
	Task
	Retention time.Duration
	repo      database.SuppressionPruner
	now       func() time.Time
}

func NewPruneSuppressionsTask(retention time.Duration, repo database.SuppressionPruner) *PruneSuppressionsTask {
	return &PruneSuppressionsTask{
		Task:      NewTask(TaskTypePruneSuppressions),
		Retention: retention,
		repo:      repo,
		now:       time.Now,
	}
}

func (t *PruneSuppressionsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := t.now().Add(-t.Retention)
	pruned, err := t.repo.Prune(ctx, cutoff)
	if err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"pruned", humanize.Comma(pruned),
		"older_than", humanize.Time(cutoff),
		"duration", t.GetDuration())
	return nil
}
