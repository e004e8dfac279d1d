package tasks

import (
	"log/slog"

	"github.com/lysyi3m/feed-comb/app/database"
	"github.com/lysyi3m/feed-comb/app/filter"
)

var _ filter.Journal = (*Journal)(nil)

// Journal hands engine decisions to the worker pool. Record never blocks;
// entries are dropped with a warning when the queue is full.
type Journal struct {
	sessionID string
	scheduler TaskSchedulerInterface
	repo      database.SuppressionWriter
}

func NewJournal(sessionID string, scheduler TaskSchedulerInterface, repo database.SuppressionWriter) *Journal {
	return &Journal{
		sessionID: sessionID,
		scheduler: scheduler,
		repo:      repo,
	}
}

func (j *Journal) Record(s filter.Suppression) {
	task := NewRecordSuppressionTask(database.Suppression{
		SessionID: j.sessionID,
		Reason:    s.Reason,
		Trigger:   s.Trigger,
		Title:     s.Title,
		Channel:   s.Channel,
		Exempted:  s.Exempted,
		CreatedAt: s.CreatedAt,
	}, j.repo)

	if err := j.scheduler.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue RecordSuppressionTask", "session", j.sessionID, "reason", s.Reason, "error", err)
	}
}
