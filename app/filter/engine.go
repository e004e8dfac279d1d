package filter

import (
	"log/slog"
	"time"

	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
)

// Result is what Process did with an item.
type Result int

const (
	ResultSkipped Result = iota
	ResultKept
	ResultSuppressed
	ResultExempted
)

// Suppression is one journaled engine decision.
type Suppression struct {
	Reason    string
	Trigger   string
	Title     string
	Channel   string
	Exempted  bool
	CreatedAt time.Time
}

// Journal receives suppression history. Implementations must not block.
type Journal interface {
	Record(Suppression)
}

type nopJournal struct{}

func (nopJournal) Record(Suppression) {}

// Engine applies the cascade and allow-lists to items and records the
// outcome on the item, in the statistics and in the journal.
type Engine struct {
	settings  settings.Provider
	filterer  *Filterer
	whitelist *Whitelist
	stats     *Stats
	journal   Journal
	page      Page
}

func NewEngine(provider settings.Provider, cache *pattern.Cache, journal Journal) *Engine {
	if journal == nil {
		journal = nopJournal{}
	}
	return &Engine{
		settings:  provider,
		filterer:  NewFilterer(provider, cache),
		whitelist: NewWhitelist(provider, cache),
		stats:     NewStats(),
		journal:   journal,
	}
}

func (e *Engine) Stats() *Stats {
	return e.stats
}

func (e *Engine) Page() Page {
	return e.page
}

func (e *Engine) SetPage(page Page) {
	e.page = page
}

// Process classifies one item unless it is already resolved. Hidden items
// stay hidden until a reset.
func (e *Engine) Process(item *feed.Item) Result {
	node := item.Node()
	if feed.IsProcessed(node) || feed.IsHidden(node) {
		return ResultSkipped
	}

	if item.Kind() == feed.KindUnknown {
		feed.MarkProcessed(node)
		return ResultKept
	}

	outcome := e.filterer.Evaluate(item, e.page)
	if outcome == nil {
		feed.MarkProcessed(node)
		return ResultKept
	}

	diagnostics := e.settings.Current().Diagnostics

	if exemption, ok := e.whitelist.Resolve(outcome, item); ok {
		feed.MarkProcessed(node)
		feed.MarkWhitelisted(node, outcome.Reason)
		e.stats.RecordExemption(outcome.Reason)
		if diagnostics {
			slog.Info("Suppression overridden", "reason", outcome.Reason, "list", exemption.List,
				"pattern", exemption.Pattern, "title", item.Title(), "channel", item.Channel())
		}
		e.journal.Record(Suppression{
			Reason:    outcome.Reason,
			Trigger:   exemption.List + ": " + exemption.Pattern,
			Title:     item.Title(),
			Channel:   item.Channel(),
			Exempted:  true,
			CreatedAt: time.Now(),
		})
		return ResultExempted
	}

	feed.MarkProcessed(node)
	feed.Hide(node, outcome.Reason, outcome.Trigger)
	e.stats.Record(outcome.Reason)

	if outcome.Silent {
		return ResultSuppressed
	}

	if diagnostics {
		slog.Info("Item suppressed", "reason", outcome.Reason, "trigger", outcome.Trigger,
			"tier", TierOf(outcome.Reason).String(), "title", item.Title(), "channel", item.Channel(), "page", e.page.String())
	}
	e.journal.Record(Suppression{
		Reason:    outcome.Reason,
		Trigger:   outcome.Trigger,
		Title:     item.Title(),
		Channel:   item.Channel(),
		CreatedAt: time.Now(),
	})
	return ResultSuppressed
}

// Navigate moves to a new page: processed markers and metadata caches are
// dropped so the next pass re-evaluates every visible item.
func (e *Engine) Navigate(doc *feed.Document, page Page) {
	e.page = page
	for _, n := range doc.Candidates() {
		feed.ClearProcessed(n)
	}
	doc.ClearMetadata()
	slog.Debug("Page context changed", "page", page.String())
}

// Reset restores every hidden item and zeroes the statistics.
func (e *Engine) Reset(doc *feed.Document) {
	for _, n := range doc.Candidates() {
		feed.Restore(n)
	}
	doc.ClearMetadata()
	e.stats.Reset()
}
