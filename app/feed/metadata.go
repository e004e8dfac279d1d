package feed

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Text is the item's visible text, whitespace-collapsed.
func (it *Item) Text() string {
	v, _ := it.meta.Text.resolve(func() (string, bool) {
		t := normalizeText(it.sel.Text())
		return t, t != ""
	})
	return v
}

// Title prefers the tooltip text of the title element over its visible text.
func (it *Item) Title() string {
	v, _ := it.meta.Title.resolve(func() (string, bool) {
		el := it.sel.Find(titleSelector).First()
		if el.Length() == 0 {
			return "", false
		}
		if t, ok := el.Attr("title"); ok {
			if t = normalizeText(t); t != "" {
				return t, true
			}
		}
		t := normalizeText(el.Text())
		return t, t != ""
	})
	return v
}

// Channel reads the channel name from the name element, or from the
// accessible label of a composite avatar control. Matches without a usable
// name are skipped.
func (it *Item) Channel() string {
	v, _ := it.meta.Channel.resolve(func() (string, bool) {
		var name string
		it.sel.Find(channelSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			var raw string
			if el.Is(avatarSelector) {
				raw = el.AttrOr("aria-label", el.AttrOr("title", ""))
			} else {
				raw = el.Text()
			}
			name = CleanChannelName(raw)
			return name == ""
		})
		return name, name != ""
	})
	return v
}

// SectionTitle is the header text of a section-kind element.
func (it *Item) SectionTitle() string {
	v, _ := it.meta.SectionTitle.resolve(func() (string, bool) {
		for _, s := range sectionTitleSelectors {
			t := normalizeText(it.sel.Find(s).First().Text())
			if t != "" {
				return t, true
			}
		}
		return "", false
	})
	return v
}

// CleanChannelName strips localized "go to channel" style decorations.
func CleanChannelName(raw string) string {
	name := normalizeText(raw)
	for _, p := range channelPrefixes {
		if len(name) >= len(p) && strings.EqualFold(name[:len(p)], p) {
			name = strings.TrimSpace(name[len(p):])
			break
		}
	}
	for _, s := range channelSuffixes {
		if len(name) >= len(s) && strings.EqualFold(name[len(name)-len(s):], s) {
			name = strings.TrimSpace(name[:len(name)-len(s)])
			break
		}
	}
	return name
}

// fragments are the short metadata strings of the item ("1.2K views",
// "3 days ago" and so on).
func (it *Item) fragments() []string {
	v, _ := it.meta.fragments.resolve(func() ([]string, bool) {
		var out []string
		it.sel.Find(fragmentSelector).Each(func(_ int, s *goquery.Selection) {
			if t := normalizeText(s.Text()); t != "" {
				out = append(out, t)
			}
		})
		return out, len(out) > 0
	})
	return v
}

// Labels are the texts of the item's badges and buttons ("Sponsored",
// "Try it free"), one entry per element.
func (it *Item) Labels() []string {
	v, _ := it.meta.labels.resolve(func() ([]string, bool) {
		var out []string
		it.sel.Find(labelTextSelector).Each(func(_ int, s *goquery.Selection) {
			if t := normalizeText(s.Text()); t != "" {
				out = append(out, t)
			}
		})
		return out, len(out) > 0
	})
	return v
}

func (it *Item) label() string {
	return normalizeText(it.sel.Find(labelSelector).First().AttrOr("aria-label", ""))
}

// Views is the view count, resolved from metadata fragments or the
// accessible label.
func (it *Item) Views() (int64, bool) {
	return it.meta.Views.resolve(func() (int64, bool) {
		if frags := it.fragments(); len(frags) > 0 {
			for _, f := range frags {
				if viewersPhrase.MatchString(f) || !viewsPhrase.MatchString(f) {
					continue
				}
				return ParseCount(f, CountViews, it.locale)
			}
			return 0, false
		}
		label := it.label()
		for _, re := range labelViews {
			if m := re.FindString(label); m != "" {
				return ParseCount(m, CountViews, it.locale)
			}
		}
		return 0, false
	})
}

// Viewers is the concurrent viewer count of a live stream.
func (it *Item) Viewers() (int64, bool) {
	return it.meta.Viewers.resolve(func() (int64, bool) {
		if frags := it.fragments(); len(frags) > 0 {
			for _, f := range frags {
				if viewersPhrase.MatchString(f) {
					return ParseCount(f, CountViewers, it.locale)
				}
			}
			return 0, false
		}
		if m := labelViewers.FindString(it.label()); m != "" {
			return ParseCount(m, CountViewers, it.locale)
		}
		return 0, false
	})
}

// ElapsedMinutes is the time since publishing in minutes.
func (it *Item) ElapsedMinutes() (int64, bool) {
	return it.meta.Elapsed.resolve(func() (int64, bool) {
		if frags := it.fragments(); len(frags) > 0 {
			for _, f := range frags {
				if IsRelativeTime(f) {
					return ParseRelativeTime(f)
				}
			}
			return 0, false
		}
		label := it.label()
		for _, re := range labelElapsed {
			if m := re.FindString(label); m != "" {
				return ParseRelativeTime(m)
			}
		}
		return 0, false
	})
}

// IsLive reports whether the item is a live stream with a known audience.
func (it *Item) IsLive() bool {
	_, ok := it.Viewers()
	return ok
}

// DurationSeconds reads the duration badge.
func (it *Item) DurationSeconds() (int64, bool) {
	return it.meta.Duration.resolve(func() (int64, bool) {
		var (
			secs  int64
			found bool
		)
		it.sel.Find(durationSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			secs, found = ParseDuration(s.Text())
			return !found
		})
		return secs, found
	})
}

func (it *Item) IsShorts() bool {
	v, _ := it.meta.Shorts.resolve(func() (bool, bool) {
		if shortsTags[it.node.Data] || it.sel.Find(shortsSelector).Length() > 0 {
			return true, true
		}
		return shortsPhrase.MatchString(it.Text()), true
	})
	return v
}

func (it *Item) IsMembersOnly() bool {
	v, _ := it.meta.Members.resolve(func() (bool, bool) {
		if it.sel.Find(membersSelector).Length() > 0 {
			return true, true
		}
		return membersPhrase.MatchString(it.Text()), true
	})
	return v
}

// IsPlaylist reports playlist and mix cards.
func (it *Item) IsPlaylist() bool {
	v, _ := it.meta.Playlist.resolve(func() (bool, bool) {
		if playlistTags[it.node.Data] || it.sel.Find(playlistSelector).Length() > 0 {
			return true, true
		}
		if it.IsMix() {
			return true, true
		}
		return playlistPhrase.MatchString(it.Text()), true
	})
	return v
}

// IsMix reports algorithmic mixes by title.
func (it *Item) IsMix() bool {
	return mixTitle.MatchString(it.Title())
}

// IsUserPlaylist reports playlists the viewer owns: the personal collection
// ids or an ownership label such as "Private".
func (it *Item) IsUserPlaylist() bool {
	v, _ := it.meta.UserPlaylist.resolve(func() (bool, bool) {
		owned := false
		it.sel.Find(listLinkSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if userPlaylistIDs[listID(s.AttrOr("href", ""))] {
				owned = true
			}
			return !owned
		})
		if owned {
			return true, true
		}
		texts := append([]string(nil), it.fragments()...)
		it.sel.Find(badgeSelector).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, normalizeText(s.Text()))
		})
		for _, t := range texts {
			for _, l := range ownershipLabels {
				if strings.EqualFold(t, l) {
					return true, true
				}
			}
		}
		return false, true
	})
	return v
}

func listID(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("list")
}
