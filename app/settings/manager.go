package settings

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// StoreKey is the key the settings document is persisted under.
const StoreKey = "settings"

// Store is the persistent key-value capability settings are saved to.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Provider hands out the current settings snapshot.
type Provider interface {
	Current() *Settings
}

// Versions are global so a replaced snapshot never reuses a version a
// compiled-pattern cache may still hold.
var lastVersion atomic.Uint64

func nextVersion() uint64 {
	return lastVersion.Add(1)
}

// Manager publishes immutable snapshots. Readers call Current; writers go
// through Replace or SetList, which bump the version of every changed list.
type Manager struct {
	current atomic.Pointer[Settings]
	mu      sync.Mutex
	hooks   []func(*Settings)
}

func NewManager(initial *Settings) *Manager {
	if initial == nil {
		initial = Defaults()
	}
	m := &Manager{}
	m.current.Store(versioned(initial.Clone(), nil))
	return m
}

func (m *Manager) Current() *Settings {
	return m.current.Load()
}

// OnChange registers fn to be called with every newly published snapshot.
func (m *Manager) OnChange(fn func(*Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// Replace validates next and publishes it.
func (m *Manager) Replace(next *Settings) (*Settings, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if next.Rules == nil {
		next.Rules = make(map[string]bool)
	}

	m.mu.Lock()
	published := versioned(next.Clone(), m.current.Load())
	m.current.Store(published)
	hooks := slices.Clone(m.hooks)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(published)
	}
	return published, nil
}

// SetList replaces a single pattern list.
func (m *Manager) SetList(name string, entries []string) (*Settings, error) {
	if !IsList(name) {
		return nil, fmt.Errorf("unknown list: %s", name)
	}
	next := m.Current().Clone()
	next.setEntries(name, slices.Clone(entries))
	return m.Replace(next)
}

// Restore replaces the current snapshot with the one saved in store, if any.
func (m *Manager) Restore(ctx context.Context, store Store) error {
	raw, ok, err := store.Get(ctx, StoreKey)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if !ok {
		return nil
	}
	s, err := Parse([]byte(raw))
	if err != nil {
		return fmt.Errorf("failed to restore settings: %w", err)
	}

	m.mu.Lock()
	m.current.Store(versioned(s, m.current.Load()))
	m.mu.Unlock()

	slog.Info("Settings restored from store")
	return nil
}

// Save writes s to store.
func Save(ctx context.Context, store Store, s *Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := store.Set(ctx, StoreKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// versioned assigns list versions to s: lists equal to prev keep prev's
// version, everything else gets a fresh one.
func versioned(s, prev *Settings) *Settings {
	s.versions = make(map[string]uint64)
	for _, name := range s.listKeys() {
		if prev != nil {
			if v, ok := prev.versions[name]; ok && slices.Equal(prev.entries(name), s.entries(name)) {
				s.versions[name] = v
				continue
			}
		}
		s.versions[name] = nextVersion()
	}
	return s
}
