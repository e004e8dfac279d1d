package session

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lysyi3m/feed-comb/app/batch"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/filter"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
)

// FeedResult is a syndication feed after classification.
type FeedResult struct {
	Channel *feed.Channel
	Kept    []feed.Entry
	// Hidden maps the GUID of each suppressed entry to its reason.
	Hidden  map[string]string
	Reasons []filter.ReasonCount
	RSS     string
}

// FeedFilter renders feed entries as content cards, classifies them in one
// synchronous pass and regenerates the feed from the entries left visible.
// Feeds are treated as channel pages.
type FeedFilter struct {
	settings  settings.Provider
	patterns  *pattern.Cache
	journal   filter.Journal
	parser    *feed.Parser
	generator *feed.Generator
}

func NewFeedFilter(provider settings.Provider, patterns *pattern.Cache, journal filter.Journal) *FeedFilter {
	return &FeedFilter{
		settings:  provider,
		patterns:  patterns,
		journal:   journal,
		parser:    feed.NewParser(),
		generator: feed.NewGenerator(),
	}
}

func (f *FeedFilter) Run(data []byte, selfPath string) (*FeedResult, error) {
	channel, entries, err := f.parser.Run(data)
	if err != nil {
		return nil, err
	}

	doc, err := feed.ParseDocument(strings.NewReader(feed.RenderCards(channel, entries)), "text/html; charset=utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to render feed cards: %w", err)
	}

	engine := filter.NewEngine(f.settings, f.patterns, f.journal)
	engine.SetPage(filter.PageChannel)
	scheduler := batch.NewScheduler(doc, engine, batch.Manual{}, batch.Options{SliceSize: len(entries) + 1})
	scheduler.ScanAll()
	scheduler.Drain()

	kept := doc.Kept(entries)
	rss, err := f.generator.Run(*channel, kept, selfPath)
	if err != nil {
		return nil, err
	}

	slog.Info("Feed filtered",
		"title", channel.Title,
		"entries", len(entries),
		"kept", len(kept),
		"suppressed", engine.Stats().Total())

	return &FeedResult{
		Channel: channel,
		Kept:    kept,
		Hidden:  doc.HiddenGUIDs(),
		Reasons: engine.Stats().Summary(),
		RSS:     rss,
	}, nil
}
