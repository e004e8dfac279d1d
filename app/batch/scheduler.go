package batch

import (
	"log/slog"
	"time"

	"github.com/lysyi3m/feed-comb/app/cfg"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/filter"
	"golang.org/x/net/html"
)

type Options struct {
	// SliceSize caps the items classified per idle slice.
	SliceSize int
	// SliceBudget caps the time spent per idle slice.
	SliceBudget time.Duration
	// MutationThreshold is the change count above which a notification batch
	// triggers a full re-scan instead of incremental tracking.
	MutationThreshold int
	IdleTimeout       time.Duration
}

func OptionsFromConfig(c *cfg.Cfg) Options {
	return Options{
		SliceSize:         c.SliceSize,
		SliceBudget:       c.SliceBudget,
		MutationThreshold: c.MutationThreshold,
		IdleTimeout:       c.IdleTimeout,
	}
}

// Scheduler turns tree change notifications into queued candidates and
// classifies them in bounded slices. It is not safe for concurrent use: all
// calls come from the flow that owns the idler.
type Scheduler struct {
	doc    *feed.Document
	engine *filter.Engine
	idler  Idler
	opts   Options

	queue     []*html.Node
	next      int
	queued    map[*html.Node]bool
	scheduled bool

	fullPass      bool
	healthChecked bool

	now func() time.Time
}

func NewScheduler(doc *feed.Document, engine *filter.Engine, idler Idler, opts Options) *Scheduler {
	if opts.SliceSize <= 0 {
		opts.SliceSize = 40
	}
	return &Scheduler{
		doc:    doc,
		engine: engine,
		idler:  idler,
		opts:   opts,
		queued: make(map[*html.Node]bool),
		now:    time.Now,
	}
}

// Pending is the number of queued candidates not yet classified.
func (s *Scheduler) Pending() int {
	return len(s.queue) - s.next
}

// Observe schedules the candidates introduced by one batch of mutations.
func (s *Scheduler) Observe(mutations []feed.Mutation) {
	changes := 0
	for _, m := range mutations {
		changes += len(m.Added) + len(m.Removed)
		if m.Attribute != "" {
			changes++
		}
	}
	if changes == 0 {
		return
	}

	if changes > s.opts.MutationThreshold {
		slog.Debug("Mutation threshold exceeded, scanning page", "changes", changes, "threshold", s.opts.MutationThreshold)
		s.ScanAll()
		return
	}

	var nodes []*html.Node
	for _, m := range mutations {
		for _, n := range m.Added {
			if n.Type == html.ElementNode {
				nodes = append(nodes, s.doc.CandidatesWithin(n)...)
			}
		}
	}
	s.enqueue(nodes)
}

// ScanAll schedules every candidate of the page. The first full pass with a
// rendered video card also runs the selector health check.
func (s *Scheduler) ScanAll() {
	s.fullPass = true
	s.enqueue(s.doc.Candidates())
}

func (s *Scheduler) enqueue(nodes []*html.Node) {
	added := 0
	for _, n := range nodes {
		if s.queued[n] {
			continue
		}
		s.queued[n] = true
		s.queue = append(s.queue, n)
		added++
	}
	if added > 0 {
		slog.Debug("Candidates queued", "added", added, "pending", s.Pending())
	}
	s.schedule()
}

func (s *Scheduler) schedule() {
	if s.scheduled || s.Pending() == 0 {
		return
	}
	s.scheduled = true
	s.idler.RequestIdle(s.opts.IdleTimeout, s.runSlice)
}

func (s *Scheduler) runSlice(deadline time.Time) {
	s.scheduled = false
	s.ProcessSlice(deadline)
	s.schedule()
}

// ProcessSlice classifies queued candidates in tree order until the slice
// size, the slice budget or the deadline is reached. At least one candidate
// is classified per call so progress never stalls.
func (s *Scheduler) ProcessSlice(deadline time.Time) int {
	if s.opts.SliceBudget > 0 {
		if budget := s.now().Add(s.opts.SliceBudget); budget.Before(deadline) {
			deadline = budget
		}
	}

	processed := 0
	for s.Pending() > 0 && processed < s.opts.SliceSize {
		if processed > 0 && !s.now().Before(deadline) {
			break
		}
		n := s.queue[s.next]
		s.queue[s.next] = nil
		s.next++
		delete(s.queued, n)

		if !s.doc.Attached(n) {
			continue
		}
		item := s.doc.Item(n)
		if s.fullPass && !s.healthChecked {
			s.checkHealth(item)
		}
		s.engine.Process(item)
		processed++
	}

	if s.Pending() == 0 {
		s.queue = s.queue[:0]
		s.next = 0
		s.fullPass = false
	}
	return processed
}

// Drain classifies everything queued without yielding.
func (s *Scheduler) Drain() int {
	total := 0
	for s.Pending() > 0 {
		total += s.ProcessSlice(s.now().Add(time.Hour))
	}
	return total
}

func (s *Scheduler) checkHealth(item *feed.Item) {
	if item.Kind() != feed.KindVideo || !feed.Visible(item.Node()) || item.Title() == "" {
		return
	}
	s.healthChecked = true

	missing := feed.MissingMetadata(item)
	for _, field := range missing {
		slog.Warn("Selector health check failed", "field", field, "tag", item.Node().Data, "title", item.Title())
	}
	if len(missing) == 0 {
		slog.Debug("Selector health check passed", "tag", item.Node().Data)
	}
}

// HealthChecked reports whether the one-time selector check has run.
func (s *Scheduler) HealthChecked() bool {
	return s.healthChecked
}
