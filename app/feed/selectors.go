package feed

import (
	"strings"

	"golang.org/x/net/html"
)

// Kind is the structural role of a content-tree element.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideo
	KindSection
	KindPlaylistPanel
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindSection:
		return "section"
	case KindPlaylistPanel:
		return "playlist_panel"
	default:
		return "unknown"
	}
}

// VideoLike reports whether per-item content rules apply to the kind.
func (k Kind) VideoLike() bool {
	return k == KindVideo || k == KindPlaylistPanel
}

var kindByTag = map[string]Kind{
	"ytd-rich-item-renderer":            KindVideo,
	"ytd-video-renderer":                KindVideo,
	"ytd-grid-video-renderer":           KindVideo,
	"ytd-compact-video-renderer":        KindVideo,
	"ytd-reel-item-renderer":            KindVideo,
	"ytm-shorts-lockup-view-model":      KindVideo,
	"yt-lockup-view-model":              KindVideo,
	"ytd-playlist-renderer":             KindVideo,
	"ytd-compact-playlist-renderer":     KindVideo,
	"ytd-radio-renderer":                KindVideo,
	"ytd-compact-radio-renderer":        KindVideo,
	"ytd-playlist-video-renderer":       KindVideo,
	"ytd-rich-section-renderer":         KindSection,
	"ytd-rich-shelf-renderer":           KindSection,
	"ytd-reel-shelf-renderer":           KindSection,
	"ytd-shelf-renderer":                KindSection,
	"ytd-horizontal-card-list-renderer": KindSection,
	"grid-shelf-view-model":             KindSection,
	"ytd-playlist-panel-video-renderer": KindPlaylistPanel,
}

var playlistTags = map[string]bool{
	"ytd-playlist-renderer":         true,
	"ytd-compact-playlist-renderer": true,
	"ytd-radio-renderer":            true,
	"ytd-compact-radio-renderer":    true,
}

var shortsTags = map[string]bool{
	"ytd-reel-item-renderer":       true,
	"ytm-shorts-lockup-view-model": true,
}

// CandidateSelector matches every element the engine classifies.
var CandidateSelector = buildCandidateSelector()

func buildCandidateSelector() string {
	tags := make([]string, 0, len(kindByTag))
	for tag := range kindByTag {
		tags = append(tags, tag)
	}
	return strings.Join(tags, ", ")
}

// KindOf derives the kind of an element from its tag name.
func KindOf(n *html.Node) Kind {
	if n == nil || n.Type != html.ElementNode {
		return KindUnknown
	}
	return kindByTag[n.Data]
}

func sameFamily(a, b Kind) bool {
	if a == KindUnknown || b == KindUnknown {
		return false
	}
	return a.VideoLike() == b.VideoLike()
}

// Metadata locations inside an item.
const (
	titleSelector = "#video-title, #video-title-link, a.yt-lockup-metadata-view-model-wiz__title, " +
		"a.yt-lockup-metadata-view-model__title, h3 a"
	channelSelector = "ytd-channel-name #text, ytd-channel-name a, #channel-name #text, #channel-name a, " +
		".yt-content-metadata-view-model-wiz__metadata-text a, .yt-content-metadata-view-model__metadata-text a, " +
		"yt-decorated-avatar-view-model, #avatar-link"
	avatarSelector   = "yt-decorated-avatar-view-model, #avatar-link"
	fragmentSelector = "#metadata-line span.inline-metadata-item, #metadata-line > span, .inline-metadata-item, " +
		"span.yt-content-metadata-view-model-wiz__metadata-text, span.yt-content-metadata-view-model__metadata-text"
	labelSelector    = "#video-title[aria-label], #video-title-link[aria-label], a[aria-label]"
	durationSelector = "ytd-thumbnail-overlay-time-status-renderer #text, ytd-thumbnail-overlay-time-status-renderer span, " +
		".badge-shape-wiz__text, .yt-badge-shape__text"
	shortsSelector  = "a[href^=\"/shorts/\"], a[href*=\"youtube.com/shorts/\"], [overlay-style=\"SHORTS\"]"
	membersSelector = ".badge-style-type-members-only, [aria-label=\"Members only\"], " +
		".badge-shape-wiz--commerce, .yt-badge-shape--commerce"
	playlistSelector = "ytd-thumbnail-overlay-bottom-panel-renderer, yt-collection-thumbnail-view-model, " +
		"yt-collections-stack, ytd-playlist-thumbnail"
	listLinkSelector = "a[href*=\"list=\"]"
	badgeSelector    = ".badge, badge-shape, .badge-shape-wiz__text, .yt-badge-shape__text, #stats span, " +
		"ytd-badge-supported-renderer span"
	labelTextSelector = badgeSelector + ", ad-badge-view-model, #ad-badge, .ad-badge, " +
		"yt-button-shape button, tp-yt-paper-button"
	forceHiddenSelector = "[hidden], [is-dismissed]"
)

// sectionTitleSelectors are tried in order; the first non-empty text wins.
var sectionTitleSelectors = []string{
	"#title-text",
	"#rich-shelf-header #title",
	"h2 #title",
	".yt-shelf-header-layout__title",
	"span#title",
	"#title",
	"h2",
}

// HealthChecks are metadata locations a fully rendered video card is
// expected to expose.
var HealthChecks = map[string]string{
	"title":    titleSelector,
	"channel":  channelSelector,
	"metadata": fragmentSelector + ", " + labelSelector,
}
