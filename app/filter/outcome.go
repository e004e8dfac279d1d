package filter

// Reason codes produced by the cascade. Free-text rules report their own
// rule key.
const (
	ReasonNativeHidden     = "native_hidden"
	ReasonSectionBlacklist = "section_blacklist"
	ReasonKeywordBlacklist = "keyword_blacklist"
	ReasonChannelBlacklist = "channel_blacklist"
	ReasonShorts           = "shorts"
	ReasonMembersOnly      = "members_only"
	ReasonLowView          = "low_view"
	ReasonDuration         = "duration_filter"
	ReasonMixPlaylist      = "mix_playlist"
)

// Tier decides whether the general allow-lists may exempt an outcome.
type Tier int

const (
	Weak Tier = iota
	Strong
)

func (t Tier) String() string {
	if t == Strong {
		return "strong"
	}
	return "weak"
}

// tiers lists every strong reason. Anything absent, user-defined text rules
// included, is weak.
var tiers = map[string]Tier{
	ReasonNativeHidden: Strong,
	"ad_sponsor":       Strong,
	"premium_promo":    Strong,
	ReasonMembersOnly:  Strong,
}

func TierOf(reason string) Tier {
	return tiers[reason]
}

// Outcome is a suppression decision before allow-list resolution.
type Outcome struct {
	Reason  string
	Trigger string
	Pattern string
	// Silent outcomes are tallied but never logged or journaled.
	Silent bool
}
