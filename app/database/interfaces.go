package database

import (
	"context"
	"time"

	"github.com/lysyi3m/feed-comb/app/settings"
)

var _ settings.Store = (*SettingsRepository)(nil)

type SuppressionWriter interface {
	Insert(ctx context.Context, s Suppression) error
}

type SuppressionReader interface {
	Recent(ctx context.Context, limit int) ([]Suppression, error)
	CountByReason(ctx context.Context) ([]ReasonCount, error)
}

type SuppressionPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}

var (
	_ SuppressionWriter = (*SuppressionRepository)(nil)
	_ SuppressionReader = (*SuppressionRepository)(nil)
	_ SuppressionPruner = (*SuppressionRepository)(nil)
)
