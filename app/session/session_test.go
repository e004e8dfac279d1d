package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lysyi3m/feed-comb/app/batch"
	"github.com/lysyi3m/feed-comb/app/cfg"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/filter"
	"github.com/lysyi3m/feed-comb/app/pattern"
	"github.com/lysyi3m/feed-comb/app/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journal struct {
	mu      sync.Mutex
	entries map[string][]filter.Suppression
}

func (j *journal) factory(id string) filter.Journal {
	return journalFunc(func(s filter.Suppression) {
		j.mu.Lock()
		defer j.mu.Unlock()
		j.entries[id] = append(j.entries[id], s)
	})
}

type journalFunc func(filter.Suppression)

func (f journalFunc) Record(s filter.Suppression) { f(s) }

func card(title, channel string) string {
	return fmt.Sprintf(`<ytd-rich-item-renderer><a id="video-title-link">%s</a>`+
		`<ytd-channel-name><a>%s</a></ytd-channel-name>`+
		`<div id="metadata-line"><span class="inline-metadata-item">10K views</span>`+
		`<span class="inline-metadata-item">2 days ago</span></div></ytd-rich-item-renderer>`, title, channel)
}

func page(cards ...string) string {
	return `<html lang="en"><body><div id="contents">` + strings.Join(cards, "") + `</div></body></html>`
}

func newRegistry(t *testing.T, size int) (*Registry, *settings.Manager, *journal) {
	t.Helper()
	s := settings.Defaults()
	s.KeywordBlacklist = []string{"trailer"}
	m := settings.NewManager(s)
	j := &journal{entries: map[string][]filter.Suppression{}}

	r, err := NewRegistry(m, pattern.NewCache(pattern.DefaultVariants()), j.factory, Options{
		Size:       size,
		Batch:      batch.Options{SliceSize: 2, MutationThreshold: 50, IdleTimeout: 50 * time.Millisecond},
		IdleWindow: 5 * time.Millisecond,
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r, m, j
}

func create(t *testing.T, r *Registry, url string, cards ...string) *Session {
	t.Helper()
	s, err := r.Create(context.Background(), url, strings.NewReader(page(cards...)), "text/html")
	require.NoError(t, err)
	return s
}

func TestSession_FullPass(t *testing.T) {
	r, _, j := newRegistry(t, 4)
	ctx := context.Background()
	s := create(t, r, "https://www.youtube.com/", card("New Trailer", "Studio"), card("Review", "Critic"), card("Vlog", "Me"))

	_, err := s.Drain(ctx)
	require.NoError(t, err)

	snap, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "home", snap.Page)
	assert.Equal(t, int64(1), snap.Total)
	assert.Zero(t, snap.Pending)
	assert.Equal(t, []filter.ReasonCount{{Reason: filter.ReasonKeywordBlacklist, Count: 1}}, snap.Reasons)

	html, err := s.Render(ctx)
	require.NoError(t, err)
	assert.Contains(t, html, `data-comb-hidden="keyword_blacklist"`)
	assert.Equal(t, 3, strings.Count(html, feed.AttrProcessed))

	j.mu.Lock()
	defer j.mu.Unlock()
	assert.Len(t, j.entries[s.ID], 1)
}

func TestSession_IdlePassCompletesWithoutDrain(t *testing.T) {
	r, _, _ := newRegistry(t, 4)
	ctx := context.Background()
	s := create(t, r, "https://www.youtube.com/", card("Trailer", "a"), card("b", "b"), card("c", "c"), card("d", "d"), card("e", "e"))

	assert.Eventually(t, func() bool {
		snap, err := s.Stats(ctx)
		return err == nil && snap.Pending == 0 && snap.Total == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSession_Mutate(t *testing.T) {
	r, _, _ := newRegistry(t, 4)
	ctx := context.Background()
	s := create(t, r, "https://www.youtube.com/", card("Review", "Critic"))

	n, err := s.Mutate(ctx, []feed.Op{{Type: feed.OpAppend, Target: "#contents", HTML: card("Teaser Trailer", "Studio")}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Drain(ctx)
	require.NoError(t, err)
	snap, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Total)

	_, err = s.Mutate(ctx, []feed.Op{{Type: "replace", Target: "#contents"}})
	assert.Error(t, err)
}

func TestSession_MutateWithCancelledContextChangesNothing(t *testing.T) {
	r, _, _ := newRegistry(t, 4)
	s := create(t, r, "https://www.youtube.com/", card("Review", "Critic"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 20; i++ {
		n, err := s.Mutate(ctx, []feed.Op{{Type: feed.OpAppend, Target: "#contents", HTML: card(fmt.Sprintf("Late %d", i), "Studio")}})
		require.Error(t, err)
		assert.Zero(t, n)
	}

	html, err := s.Render(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, html, "Late ")

	_, err = s.Stats(ctx)
	assert.Error(t, err)
}

func TestSession_NavigateAndReset(t *testing.T) {
	r, m, _ := newRegistry(t, 4)
	ctx := context.Background()
	s := create(t, r, "https://www.youtube.com/", card("Trailer", "Studio"), card("Review", "Critic"))
	_, err := s.Drain(ctx)
	require.NoError(t, err)

	_, err = m.SetList(settings.ListKeywordBlacklist, []string{"review"})
	require.NoError(t, err)

	require.NoError(t, s.Navigate(ctx, "https://www.youtube.com/watch?v=x"))
	_, err = s.Drain(ctx)
	require.NoError(t, err)

	snap, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "watch", snap.Page)
	assert.Equal(t, "https://www.youtube.com/watch?v=x", snap.URL)
	assert.Equal(t, int64(2), snap.Total, "hidden items stay hidden; kept items are re-evaluated")

	require.NoError(t, s.Reset(ctx))
	_, err = s.Drain(ctx)
	require.NoError(t, err)

	snap, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Total, "after a reset only the current lists apply")
}

func TestRegistry_LRU(t *testing.T) {
	r, _, _ := newRegistry(t, 1)
	first := create(t, r, "https://www.youtube.com/", card("a", "b"))
	second := create(t, r, "https://www.youtube.com/", card("c", "d"))

	assert.Equal(t, 1, r.Len())
	_, ok := r.Get(first.ID)
	assert.False(t, ok)

	_, err := first.Stats(context.Background())
	assert.Error(t, err, "evicted sessions are closed")

	got, ok := r.Get(second.ID)
	require.True(t, ok)
	assert.Same(t, second, got)

	assert.True(t, r.Delete(second.ID))
	assert.False(t, r.Delete(second.ID))
	assert.Zero(t, r.Len())
}

const channelFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
  <title>Movie Channel</title>
  <link rel="alternate" href="https://www.youtube.com/channel/UC123"/>
  <updated>2024-01-02T00:00:00+00:00</updated>
  <entry>
    <id>yt:video:abc</id>
    <yt:videoId>abc</yt:videoId>
    <title>最新電影預告片</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc"/>
    <author><name>Movie Channel</name></author>
    <published>2024-01-01T00:00:00+00:00</published>
    <media:group>
      <media:community><media:statistics views="1234"/></media:community>
    </media:group>
  </entry>
  <entry>
    <id>yt:video:def</id>
    <yt:videoId>def</yt:videoId>
    <title>Behind the scenes</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=def"/>
    <author><name>Movie Channel</name></author>
    <published>2024-01-01T00:00:00+00:00</published>
    <media:group>
      <media:community><media:statistics views="98765"/></media:community>
    </media:group>
  </entry>
</feed>`

func TestFeedFilter_Run(t *testing.T) {
	cfg.Set(&cfg.Cfg{Port: "8080", Version: "test"})

	s := settings.Defaults()
	s.KeywordBlacklist = []string{"预告"}
	f := NewFeedFilter(settings.NewManager(s), pattern.NewCache(pattern.DefaultVariants()), nil)

	result, err := f.Run([]byte(channelFeed), "/feeds/filter")
	require.NoError(t, err)

	require.Len(t, result.Kept, 1)
	assert.Equal(t, "Behind the scenes", result.Kept[0].Title)
	assert.Equal(t, map[string]string{"yt:video:abc": filter.ReasonKeywordBlacklist}, result.Hidden)
	assert.Contains(t, result.RSS, "Behind the scenes")
	assert.NotContains(t, result.RSS, "最新電影預告片")
}

func TestFeedFilter_LowView(t *testing.T) {
	cfg.Set(&cfg.Cfg{Port: "8080", Version: "test"})

	s := settings.Defaults()
	s.Rules[settings.RuleLowView] = true
	s.LowViewThreshold = 5000
	f := NewFeedFilter(settings.NewManager(s), pattern.NewCache(pattern.DefaultVariants()), nil)

	result, err := f.Run([]byte(channelFeed), "/feeds/filter")
	require.NoError(t, err)

	require.Len(t, result.Kept, 1)
	assert.Equal(t, "Behind the scenes", result.Kept[0].Title)
	assert.Equal(t, []filter.ReasonCount{{Reason: filter.ReasonLowView, Count: 1}}, result.Reasons)
}

func TestFeedFilter_InvalidFeed(t *testing.T) {
	f := NewFeedFilter(settings.NewManager(settings.Defaults()), pattern.NewCache(pattern.DefaultVariants()), nil)

	_, err := f.Run([]byte("not a feed"), "/feeds/filter")
	assert.Error(t, err)
}
