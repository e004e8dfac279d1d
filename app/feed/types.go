package feed

import (
	"time"
)

// Syndication feed types

type Channel struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
	Language    string
	PublishedAt *time.Time
}

type Entry struct {
	GUID         string
	VideoID      string
	Title        string
	Link         string
	Description  string
	Channel      string
	ChannelURL   string
	ThumbnailURL string
	PublishedAt  time.Time
	UpdatedAt    *time.Time
	Views        int64 // -1 when the feed carries no statistics
	Categories   []string

	ContentHash string
}
