package tasks

import (
	"context"
	"fmt"

	"github.com/lysyi3m/feed-comb/app/database"
)

type RecordSuppressionTask struct {
	Task
	Entry database.Suppression
	repo  database.SuppressionWriter
}

func NewRecordSuppressionTask(entry database.Suppression, repo database.SuppressionWriter) *RecordSuppressionTask {
	return &RecordSuppressionTask{
		Task:  NewTask(TaskTypeRecordSuppression),
		Entry: entry,
		repo:  repo,
	}
}

func (t *RecordSuppressionTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.repo.Insert(ctx, t.Entry); err != nil {
		return fmt.Errorf("failed to record suppression: %w", err)
	}
	return nil
}
