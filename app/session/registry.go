package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/lysyi3m/feed-comb/app/batch"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/filter"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
)

// JournalFactory builds the suppression journal of a new session.
type JournalFactory func(sessionID string) filter.Journal

type Options struct {
	Size       int
	Batch      batch.Options
	IdleWindow time.Duration
}

// Registry keeps the most recently used sessions. Evicted sessions are
// closed.
type Registry struct {
	sessions *lru.Cache[string, *Session]
	settings settings.Provider
	patterns *pattern.Cache
	journals JournalFactory
	opts     Options
}

func NewRegistry(provider settings.Provider, patterns *pattern.Cache, journals JournalFactory, opts Options) (*Registry, error) {
	cache, err := lru.NewWithEvict(opts.Size, func(id string, s *Session) {
		s.close()
		slog.Debug("Session closed", "id", id)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Registry{
		sessions: cache,
		settings: provider,
		patterns: patterns,
		journals: journals,
		opts:     opts,
	}, nil
}

// Create parses a page snapshot and starts observing it. The first
// full-page pass is scheduled before Create returns.
func (r *Registry) Create(ctx context.Context, url string, body io.Reader, contentType string) (*Session, error) {
	doc, err := feed.ParseDocument(body, contentType)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	var journal filter.Journal
	if r.journals != nil {
		journal = r.journals(id)
	}
	engine := filter.NewEngine(r.settings, r.patterns, journal)
	loop := batch.NewLoop(r.opts.IdleWindow)

	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		url:       url,
		doc:       doc,
		engine:    engine,
		scheduler: batch.NewScheduler(doc, engine, loop, r.opts.Batch),
		loop:      loop,
	}
	loop.Start()

	if err := s.do(ctx, func() {
		engine.SetPage(filter.ParsePage(url))
		s.scheduler.ScanAll()
	}); err != nil {
		s.close()
		return nil, err
	}

	r.sessions.Add(id, s)
	slog.Info("Session created", "id", id, "url", url, "locale", doc.Locale().Tag.String())
	return s, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	return r.sessions.Get(id)
}

// Delete closes and forgets a session.
func (r *Registry) Delete(id string) bool {
	return r.sessions.Remove(id)
}

func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Close closes every session.
func (r *Registry) Close() {
	r.sessions.Purge()
}
