package tasks

import (
	"context"
	"log/slog"
	"sync"

	"github.com/lysyi3m/feed-comb/app/settings"
)

// SettingsPersister writes the current settings snapshot to a store through
// the scheduler. Saves are serialised and always read the latest snapshot,
// so a slow save can never overwrite a newer one.
type SettingsPersister struct {
	provider  settings.Provider
	store     settings.Store
	scheduler TaskSchedulerInterface
	mu        sync.Mutex
}

func NewSettingsPersister(provider settings.Provider, store settings.Store, scheduler TaskSchedulerInterface) *SettingsPersister {
	return &SettingsPersister{
		provider:  provider,
		store:     store,
		scheduler: scheduler,
	}
}

// Notify queues a save. It matches the settings.Manager change hook signature.
func (p *SettingsPersister) Notify(*settings.Settings) {
	if err := p.scheduler.EnqueueTask(NewPersistSettingsTask(p)); err != nil {
		slog.Error("Error enqueueing persist settings task", "error", err)
	}
}

func (p *SettingsPersister) save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return settings.Save(ctx, p.store, p.provider.Current())
}

type PersistSettingsTask struct {
	Task
	persister *SettingsPersister
}

func NewPersistSettingsTask(persister *SettingsPersister) *PersistSettingsTask {
	return &PersistSettingsTask{
		Task:      NewTask(TaskTypePersistSettings),
		persister: persister,
	}
}

func (t *PersistSettingsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.persister.save(ctx); err != nil {
		return err
	}

	slog.Info("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration())
	return nil
}
