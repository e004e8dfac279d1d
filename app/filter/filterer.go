package filter

import (
	"fmt"

	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
)

// Filterer runs the classification cascade. It only reads: marking and
// visibility changes happen in the Engine.
type Filterer struct {
	settings settings.Provider
	cache    *pattern.Cache
}

func NewFilterer(provider settings.Provider, cache *pattern.Cache) *Filterer {
	return &Filterer{
		settings: provider,
		cache:    cache,
	}
}

// Bypassed reports whether per-item content rules are disabled on page.
func Bypassed(page Page, s *settings.Settings) bool {
	switch page {
	case PageLibrary, PageSubscriptions:
		return true
	case PageChannel:
		return s.DisableOnChannelPages
	}
	return false
}

// Evaluate returns the first matching outcome for the item, or nil to keep it.
func (f *Filterer) Evaluate(item *feed.Item, page Page) *Outcome {
	s := f.settings.Current()

	if item.ForceHidden() {
		return &Outcome{Reason: ReasonNativeHidden, Silent: true}
	}

	if outcome := f.applyTextRules(s, item); outcome != nil {
		return outcome
	}

	switch {
	case item.Kind() == feed.KindSection:
		return f.applySectionRule(s, item)
	case !item.Kind().VideoLike():
		return nil
	}

	if Bypassed(page, s) {
		return nil
	}

	return f.applyContentRules(s, item)
}

func (f *Filterer) matchers(s *settings.Settings, list string) []pattern.Matcher {
	return f.cache.Get(s, list, s.RegionConvert)
}

// applyTextRules tests the item's full text and each of its badge labels, so
// exact entries ("=Sponsored") only hit a label that says exactly that.
func (f *Filterer) applyTextRules(s *settings.Settings, item *feed.Item) *Outcome {
	var texts []string
	for _, rule := range s.TextRules {
		if !rule.Enabled {
			continue
		}
		if texts == nil {
			texts = append([]string{item.Text()}, item.Labels()...)
		}
		matchers := f.matchers(s, settings.TextRulePrefix+rule.Key)
		for _, text := range texts {
			if m, ok := pattern.First(matchers, text); ok {
				return &Outcome{
					Reason:  rule.Key,
					Trigger: fmt.Sprintf("text matches %q", m.Source()),
					Pattern: m.Source(),
				}
			}
		}
	}
	return nil
}

func (f *Filterer) applySectionRule(s *settings.Settings, item *feed.Item) *Outcome {
	title := item.SectionTitle()
	if m, ok := pattern.First(f.matchers(s, settings.ListSectionBlacklist), title); ok {
		return &Outcome{
			Reason:  ReasonSectionBlacklist,
			Trigger: fmt.Sprintf("section %q", title),
			Pattern: m.Source(),
		}
	}
	return nil
}

func (f *Filterer) applyContentRules(s *settings.Settings, item *feed.Item) *Outcome {
	title := item.Title()
	if m, ok := pattern.First(f.matchers(s, settings.ListKeywordBlacklist), title); ok {
		return &Outcome{
			Reason:  ReasonKeywordBlacklist,
			Trigger: fmt.Sprintf("title %q", title),
			Pattern: m.Source(),
		}
	}

	channel := item.Channel()
	if m, ok := pattern.First(f.matchers(s, settings.ListChannelBlacklist), channel); ok {
		return &Outcome{
			Reason:  ReasonChannelBlacklist,
			Trigger: fmt.Sprintf("channel %q", channel),
			Pattern: m.Source(),
		}
	}

	if item.Kind() == feed.KindPlaylistPanel {
		return nil
	}

	if s.Enabled(settings.RuleShorts) && item.IsShorts() {
		return &Outcome{Reason: ReasonShorts, Trigger: "shorts"}
	}

	if s.Enabled(settings.RuleMembersOnly) && item.IsMembersOnly() {
		return &Outcome{Reason: ReasonMembersOnly, Trigger: "members only"}
	}

	if s.Enabled(settings.RuleLowView) {
		if outcome := lowView(s, item); outcome != nil {
			return outcome
		}
	}

	if s.Enabled(settings.RuleDuration) {
		if outcome := durationBounds(s, item); outcome != nil {
			return outcome
		}
	}

	if s.Enabled(settings.RuleMixPlaylist) && item.IsPlaylist() && !item.IsUserPlaylist() {
		return &Outcome{Reason: ReasonMixPlaylist, Trigger: fmt.Sprintf("playlist %q", title)}
	}

	return nil
}

// lowView never suppresses on unknown values. A zero threshold disables it.
func lowView(s *settings.Settings, item *feed.Item) *Outcome {
	threshold := s.LowViewThreshold
	if threshold <= 0 {
		return nil
	}

	if viewers, live := item.Viewers(); live {
		if viewers < threshold {
			return &Outcome{
				Reason:  ReasonLowView,
				Trigger: fmt.Sprintf("%d watching, below %d", viewers, threshold),
			}
		}
		return nil
	}

	views, viewsKnown := item.Views()
	elapsed, elapsedKnown := item.ElapsedMinutes()
	if !viewsKnown || !elapsedKnown {
		return nil
	}
	if elapsed > s.GracePeriodHours*60 && views < threshold {
		return &Outcome{
			Reason:  ReasonLowView,
			Trigger: fmt.Sprintf("%d views after %d minutes, below %d", views, elapsed, threshold),
		}
	}
	return nil
}

func durationBounds(s *settings.Settings, item *feed.Item) *Outcome {
	duration, ok := item.DurationSeconds()
	if !ok {
		return nil
	}
	if (s.DurationMin > 0 && duration < s.DurationMin) || (s.DurationMax > 0 && duration > s.DurationMax) {
		return &Outcome{
			Reason:  ReasonDuration,
			Trigger: fmt.Sprintf("duration %ds outside [%d, %d]", duration, s.DurationMin, s.DurationMax),
		}
	}
	return nil
}
