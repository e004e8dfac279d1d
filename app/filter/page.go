package filter

import (
	"net/url"
	"strings"
)

// Page is the navigation context an item is shown in.
type Page int

const (
	PageOther Page = iota
	PageHome
	PageWatch
	PageSearch
	PageChannel
	PageSubscriptions
	PageLibrary
)

var pageNames = map[Page]string{
	PageOther:         "other",
	PageHome:          "home",
	PageWatch:         "watch",
	PageSearch:        "search",
	PageChannel:       "channel",
	PageSubscriptions: "subscriptions",
	PageLibrary:       "library",
}

func (p Page) String() string {
	return pageNames[p]
}

var libraryPaths = map[string]bool{
	"/feed/library":   true,
	"/feed/playlists": true,
	"/feed/history":   true,
	"/feed/you":       true,
}

var personalLists = map[string]bool{"WL": true, "LL": true, "LM": true}

// ParsePage derives the navigation context from a page URL.
func ParsePage(rawURL string) Page {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return PageOther
	}

	path := strings.TrimSuffix(u.Path, "/")
	switch {
	case path == "":
		return PageHome
	case path == "/watch":
		return PageWatch
	case path == "/results":
		return PageSearch
	case path == "/feed/subscriptions":
		return PageSubscriptions
	case libraryPaths[path]:
		return PageLibrary
	case path == "/playlist" && personalLists[u.Query().Get("list")]:
		return PageLibrary
	case strings.HasPrefix(path, "/@"),
		strings.HasPrefix(path, "/channel/"),
		strings.HasPrefix(path, "/c/"),
		strings.HasPrefix(path, "/user/"):
		return PageChannel
	}
	return PageOther
}
