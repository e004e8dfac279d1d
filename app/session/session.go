package session

import (
	"context"
	"fmt"
	"time"

	"github.com/lysyi3m/feed-comb/app/batch"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/filter"
)

// Session is one observed page. Its document, engine and scheduler are only
// touched from the session's loop.
type Session struct {
	ID        string
	CreatedAt time.Time

	url       string
	doc       *feed.Document
	engine    *filter.Engine
	scheduler *batch.Scheduler
	loop      *batch.Loop
}

// Snapshot is the statistics view of a session.
type Snapshot struct {
	ID       string               `json:"id"`
	URL      string               `json:"url"`
	Page     string               `json:"page"`
	Total    int64                `json:"total"`
	Exempted int64                `json:"exempted"`
	Pending  int                  `json:"pending"`
	Reasons  []filter.ReasonCount `json:"reasons"`
}

func (s *Session) do(ctx context.Context, fn func()) error {
	if err := s.loop.Do(ctx, fn); err != nil {
		return fmt.Errorf("session %s: %w", s.ID, err)
	}
	return nil
}

// Mutate applies ops to the page and schedules the candidates they
// introduce. It returns the number of change notifications produced.
func (s *Session) Mutate(ctx context.Context, ops []feed.Op) (int, error) {
	var (
		count    int
		applyErr error
	)
	err := s.do(ctx, func() {
		mutations, err := s.doc.Apply(ops)
		count = len(mutations)
		// Ops applied before an invalid one still changed the tree.
		s.scheduler.Observe(mutations)
		applyErr = err
	})
	if err != nil {
		return 0, err
	}
	if applyErr != nil {
		return count, fmt.Errorf("failed to apply mutations: %w", applyErr)
	}
	return count, nil
}

// Navigate switches the page context and re-runs a full-page pass.
func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.do(ctx, func() {
		s.url = url
		s.engine.Navigate(s.doc, filter.ParsePage(url))
		s.scheduler.ScanAll()
	})
}

// Reset restores every hidden item, zeroes statistics and re-runs a
// full-page pass.
func (s *Session) Reset(ctx context.Context) error {
	return s.do(ctx, func() {
		s.engine.Reset(s.doc)
		s.scheduler.ScanAll()
	})
}

// Drain classifies every queued candidate before returning.
func (s *Session) Drain(ctx context.Context) (int, error) {
	var n int
	err := s.do(ctx, func() {
		n = s.scheduler.Drain()
	})
	return n, err
}

func (s *Session) Stats(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := s.do(ctx, func() {
		stats := s.engine.Stats()
		snap = Snapshot{
			ID:       s.ID,
			URL:      s.url,
			Page:     s.engine.Page().String(),
			Total:    stats.Total(),
			Exempted: stats.Exempted(),
			Pending:  s.scheduler.Pending(),
			Reasons:  stats.Summary(),
		}
	})
	return snap, err
}

// Render returns the page HTML with visibility and marker attributes.
func (s *Session) Render(ctx context.Context) (string, error) {
	var (
		out       string
		renderErr error
	)
	if err := s.do(ctx, func() {
		out, renderErr = s.doc.HTML()
	}); err != nil {
		return "", err
	}
	return out, renderErr
}

func (s *Session) close() {
	s.loop.Stop()
}
