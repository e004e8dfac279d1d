package filter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
	"github.com/stretchr/testify/require"
)

type card struct {
	tag       string
	title     string
	channel   string
	fragments []string
	duration  string
	extra     string
	attrs     string
}

func (c card) html() string {
	tag := c.tag
	if tag == "" {
		tag = "ytd-rich-item-renderer"
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<%s %s>`, tag, c.attrs)
	if c.duration != "" {
		fmt.Fprintf(&b, `<ytd-thumbnail-overlay-time-status-renderer><span id="text">%s</span></ytd-thumbnail-overlay-time-status-renderer>`, c.duration)
	}
	if c.title != "" {
		fmt.Fprintf(&b, `<a id="video-title-link" title="%s">%s</a>`, c.title, c.title)
	}
	if c.channel != "" {
		fmt.Fprintf(&b, `<ytd-channel-name><a>%s</a></ytd-channel-name>`, c.channel)
	}
	if len(c.fragments) > 0 {
		b.WriteString(`<div id="metadata-line">`)
		for _, f := range c.fragments {
			fmt.Fprintf(&b, `<span class="inline-metadata-item">%s</span>`, f)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(c.extra)
	fmt.Fprintf(&b, `</%s>`, tag)
	return b.String()
}

func parseDoc(t *testing.T, body string) *feed.Document {
	t.Helper()
	page := `<html lang="en"><body><div id="contents">` + body + `</div></body></html>`
	doc, err := feed.ParseDocument(strings.NewReader(page), "text/html; charset=utf-8")
	require.NoError(t, err)
	return doc
}

func itemOf(t *testing.T, c card) *feed.Item {
	t.Helper()
	doc := parseDoc(t, c.html())
	nodes := doc.Candidates()
	require.Len(t, nodes, 1)
	return doc.Item(nodes[0])
}

// quiet returns settings with every default text rule disabled.
func quiet(mutate func(*settings.Settings)) *settings.Manager {
	s := settings.Defaults()
	for i := range s.TextRules {
		s.TextRules[i].Enabled = false
	}
	if mutate != nil {
		mutate(s)
	}
	return settings.NewManager(s)
}

func newFilterer(m *settings.Manager) *Filterer {
	return NewFilterer(m, pattern.NewCache(pattern.DefaultVariants()))
}

type recordingJournal struct {
	entries []Suppression
}

func (j *recordingJournal) Record(s Suppression) {
	j.entries = append(j.entries, s)
}
