package filter

import (
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
)

// Exemption records which allow-list entry kept an item.
type Exemption struct {
	List    string
	Pattern string
}

type Whitelist struct {
	settings settings.Provider
	cache    *pattern.Cache
}

func NewWhitelist(provider settings.Provider, cache *pattern.Cache) *Whitelist {
	return &Whitelist{
		settings: provider,
		cache:    cache,
	}
}

// Resolve decides whether an allow-list exempts the item from outcome.
// Members-only outcomes consult only the members allow-list; other strong
// outcomes are never exempted.
func (w *Whitelist) Resolve(outcome *Outcome, item *feed.Item) (*Exemption, bool) {
	s := w.settings.Current()

	if outcome.Reason == ReasonMembersOnly {
		return w.match(s, settings.ListMembersWhitelist, item.Channel())
	}

	if TierOf(outcome.Reason) == Strong {
		return nil, false
	}

	if e, ok := w.match(s, settings.ListChannelWhitelist, item.Channel()); ok {
		return e, true
	}

	title := item.Title()
	if item.Kind() == feed.KindSection {
		title = item.SectionTitle()
	}
	return w.match(s, settings.ListKeywordWhitelist, title)
}

func (w *Whitelist) match(s *settings.Settings, list, text string) (*Exemption, bool) {
	m, ok := pattern.First(w.cache.Get(s, list, s.RegionConvert), text)
	if !ok {
		return nil, false
	}
	return &Exemption{List: list, Pattern: m.Source()}, true
}
