package feed

import (
	"bytes"
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

func (p *Parser) Run(data []byte) (*Channel, []Entry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channel := &Channel{
		Title:       feed.Title,
		Link:        feed.Link,
		Description: feed.Description,
		Language:    feed.Language,
	}

	if feed.Image != nil {
		channel.ImageURL = feed.Image.URL
	}

	if feed.PublishedParsed != nil {
		channel.PublishedAt = feed.PublishedParsed
	} else if feed.UpdatedParsed != nil {
		channel.PublishedAt = feed.UpdatedParsed
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		normalized := p.normalizeItem(item)
		normalized.ContentHash = p.generateContentHash(normalized)
		entries = append(entries, normalized)
	}

	return channel, entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Entry {
	normalized := Entry{
		GUID:        cmp.Or(item.GUID, item.Link),
		Title:       item.Title,
		Link:        item.Link,
		Description: item.Description,
		Views:       -1,
	}

	if item.PublishedParsed != nil {
		normalized.PublishedAt = *item.PublishedParsed
	}

	if item.UpdatedParsed != nil {
		normalized.UpdatedAt = item.UpdatedParsed
	}

	if item.Author != nil {
		normalized.Channel = strings.TrimSpace(item.Author.Name)
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		normalized.Channel = strings.TrimSpace(item.Authors[0].Name)
	}

	if item.Categories != nil {
		normalized.Categories = item.Categories
	}

	if item.Image != nil {
		normalized.ThumbnailURL = item.Image.URL
	}

	p.applyVideoExtensions(&normalized, item.Extensions)

	return normalized
}

// applyVideoExtensions reads the yt: and media: elements of video-site feeds.
func (p *Parser) applyVideoExtensions(entry *Entry, extensions ext.Extensions) {
	if id := firstExtension(extensions["yt"]["videoId"]); id != nil {
		entry.VideoID = strings.TrimSpace(id.Value)
	}
	if uri := firstExtension(extensions["yt"]["channelId"]); uri != nil && entry.ChannelURL == "" {
		entry.ChannelURL = "https://www.youtube.com/channel/" + strings.TrimSpace(uri.Value)
	}

	group := firstExtension(extensions["media"]["group"])
	if group == nil {
		return
	}
	if thumb := firstExtension(group.Children["thumbnail"]); thumb != nil && entry.ThumbnailURL == "" {
		entry.ThumbnailURL = thumb.Attrs["url"]
	}
	if desc := firstExtension(group.Children["description"]); desc != nil && entry.Description == "" {
		entry.Description = strings.TrimSpace(desc.Value)
	}
	if community := firstExtension(group.Children["community"]); community != nil {
		if stats := firstExtension(community.Children["statistics"]); stats != nil {
			if views, err := strconv.ParseInt(stats.Attrs["views"], 10, 64); err == nil {
				entry.Views = views
			}
		}
	}
}

func firstExtension(list []ext.Extension) *ext.Extension {
	if len(list) == 0 {
		return nil
	}
	return &list[0]
}

func (p *Parser) generateContentHash(entry Entry) string {
	content := fmt.Sprintf("%s|%s",
		entry.Title,
		entry.Link)

	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
