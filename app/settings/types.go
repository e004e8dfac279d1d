package settings

import (
	"maps"
	"slices"
	"strings"
)

// Rule keys with an enabled flag.
const (
	RuleShorts      = "shorts"
	RuleMembersOnly = "members_only"
	RuleLowView     = "low_view"
	RuleDuration    = "duration_filter"
	RuleMixPlaylist = "mix_playlist"
)

// Pattern list names.
const (
	ListKeywordBlacklist = "keyword_blacklist"
	ListChannelBlacklist = "channel_blacklist"
	ListSectionBlacklist = "section_blacklist"
	ListKeywordWhitelist = "keyword_whitelist"
	ListChannelWhitelist = "channel_whitelist"
	ListMembersWhitelist = "members_whitelist"

	// TextRulePrefix prefixes the list name of a free-text rule's patterns.
	TextRulePrefix = "text:"
)

var listNames = []string{
	ListKeywordBlacklist,
	ListChannelBlacklist,
	ListSectionBlacklist,
	ListKeywordWhitelist,
	ListChannelWhitelist,
	ListMembersWhitelist,
}

// IsList reports whether name is a user-editable pattern list.
func IsList(name string) bool {
	return slices.Contains(listNames, name)
}

type TextRule struct {
	Key      string   `yaml:"key" json:"key"`
	Enabled  bool     `yaml:"enabled" json:"enabled"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// Settings is one immutable snapshot of the filter configuration. A snapshot
// is never modified after it has been published by a Manager.
type Settings struct {
	Rules     map[string]bool `yaml:"rules" json:"rules"`
	TextRules []TextRule      `yaml:"text_rules" json:"text_rules"`

	LowViewThreshold int64 `yaml:"low_view_threshold" json:"low_view_threshold"`
	GracePeriodHours int64 `yaml:"grace_period_hours" json:"grace_period_hours"`
	DurationMin      int64 `yaml:"duration_min" json:"duration_min"` // seconds, 0 = unbounded
	DurationMax      int64 `yaml:"duration_max" json:"duration_max"` // seconds, 0 = unbounded

	KeywordBlacklist []string `yaml:"keyword_blacklist" json:"keyword_blacklist"`
	ChannelBlacklist []string `yaml:"channel_blacklist" json:"channel_blacklist"`
	SectionBlacklist []string `yaml:"section_blacklist" json:"section_blacklist"`
	KeywordWhitelist []string `yaml:"keyword_whitelist" json:"keyword_whitelist"`
	ChannelWhitelist []string `yaml:"channel_whitelist" json:"channel_whitelist"`
	MembersWhitelist []string `yaml:"members_whitelist" json:"members_whitelist"`

	RegionConvert         bool `yaml:"region_convert" json:"region_convert"`
	DisableOnChannelPages bool `yaml:"disable_on_channel_pages" json:"disable_on_channel_pages"`
	Diagnostics           bool `yaml:"diagnostics" json:"diagnostics"`

	versions map[string]uint64
}

// Enabled reports the enabled flag of a rule key.
func (s *Settings) Enabled(rule string) bool {
	return s.Rules[rule]
}

// List returns the entries of a pattern list together with its version.
func (s *Settings) List(name string) ([]string, uint64) {
	return s.entries(name), s.versions[name]
}

func (s *Settings) entries(name string) []string {
	switch name {
	case ListKeywordBlacklist:
		return s.KeywordBlacklist
	case ListChannelBlacklist:
		return s.ChannelBlacklist
	case ListSectionBlacklist:
		return s.SectionBlacklist
	case ListKeywordWhitelist:
		return s.KeywordWhitelist
	case ListChannelWhitelist:
		return s.ChannelWhitelist
	case ListMembersWhitelist:
		return s.MembersWhitelist
	}
	if key, ok := strings.CutPrefix(name, TextRulePrefix); ok {
		for _, r := range s.TextRules {
			if r.Key == key {
				return r.Patterns
			}
		}
	}
	return nil
}

func (s *Settings) setEntries(name string, entries []string) {
	switch name {
	case ListKeywordBlacklist:
		s.KeywordBlacklist = entries
	case ListChannelBlacklist:
		s.ChannelBlacklist = entries
	case ListSectionBlacklist:
		s.SectionBlacklist = entries
	case ListKeywordWhitelist:
		s.KeywordWhitelist = entries
	case ListChannelWhitelist:
		s.ChannelWhitelist = entries
	case ListMembersWhitelist:
		s.MembersWhitelist = entries
	}
}

// listKeys names every pattern list of the snapshot, text rules included.
func (s *Settings) listKeys() []string {
	keys := slices.Clone(listNames)
	for _, r := range s.TextRules {
		keys = append(keys, TextRulePrefix+r.Key)
	}
	return keys
}

// Clone returns a deep copy without version information.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Rules = maps.Clone(s.Rules)
	c.TextRules = make([]TextRule, len(s.TextRules))
	for i, r := range s.TextRules {
		r.Patterns = slices.Clone(r.Patterns)
		c.TextRules[i] = r
	}
	for _, name := range listNames {
		c.setEntries(name, slices.Clone(s.entries(name)))
	}
	c.versions = nil
	return &c
}
