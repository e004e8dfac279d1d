package database

import (
	"context"
	"fmt"
	"time"
)

// SuppressionRepository stores the suppression journal.
type SuppressionRepository struct {
	db *DB
}

func NewSuppressionRepository(db *DB) *SuppressionRepository {
	return &SuppressionRepository{db: db}
}

func (r *SuppressionRepository) Insert(ctx context.Context, s Suppression) error {
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppressions (session_id, reason, trigger_text, title, channel, exempted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.SessionID, s.Reason, s.Trigger, s.Title, s.Channel, s.Exempted, createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert suppression: %w", err)
	}
	return nil
}

// Recent returns the newest entries first.
func (r *SuppressionRepository) Recent(ctx context.Context, limit int) ([]Suppression, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, reason, trigger_text, title, channel, exempted, created_at
		FROM suppressions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppressions: %w", err)
	}
	defer rows.Close()

	var out []Suppression
	for rows.Next() {
		var (
			s         Suppression
			createdAt int64
		)
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Reason, &s.Trigger, &s.Title, &s.Channel, &s.Exempted, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan suppression: %w", err)
		}
		s.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suppressions: %w", err)
	}
	return out, nil
}

// CountByReason tallies suppressed (not exempted) entries, largest first.
func (r *SuppressionRepository) CountByReason(ctx context.Context) ([]ReasonCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT reason, COUNT(*) AS n
		FROM suppressions
		WHERE exempted = 0
		GROUP BY reason
		ORDER BY n DESC, reason ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count suppressions: %w", err)
	}
	defer rows.Close()

	var out []ReasonCount
	for rows.Next() {
		var rc ReasonCount
		if err := rows.Scan(&rc.Reason, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan reason count: %w", err)
		}
		out = append(out, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reason counts: %w", err)
	}
	return out, nil
}

// Prune deletes entries older than cutoff and returns how many went.
func (r *SuppressionRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppressions WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune suppressions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned suppressions: %w", err)
	}
	return n, nil
}
