package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_VideoMetadata(t *testing.T) {
	doc := parse(t, "en", videoCard("Trailer", "Movie Channel", "1.2K views", "3 days ago"))
	it := firstItem(t, doc)

	assert.Equal(t, KindVideo, it.Kind())
	assert.Equal(t, "Trailer", it.Title())
	assert.Equal(t, "Movie Channel", it.Channel())

	views, ok := it.Views()
	assert.True(t, ok)
	assert.Equal(t, int64(1200), views)

	elapsed, ok := it.ElapsedMinutes()
	assert.True(t, ok)
	assert.Equal(t, int64(3*1440), elapsed)

	duration, ok := it.DurationSeconds()
	assert.True(t, ok)
	assert.Equal(t, int64(754), duration)

	assert.False(t, it.IsLive())
	assert.False(t, it.IsShorts())
	assert.False(t, it.IsMembersOnly())
	assert.False(t, it.IsPlaylist())
}

func TestItem_MetadataIsMemoised(t *testing.T) {
	doc := parse(t, "en", videoCard("Trailer", "Chan", "1.2K views", "3 days ago"))
	it := firstItem(t, doc)

	_, _ = it.Views()
	assert.Equal(t, Resolved, it.Metadata().Views.State())

	it.Selection().Find(".inline-metadata-item").First().SetText("5K views")
	views, _ := it.Views()
	assert.Equal(t, int64(1200), views, "cached value survives tree edits")

	it.ClearMetadata()
	assert.Equal(t, Unresolved, it.Metadata().Views.State())
	views, _ = it.Views()
	assert.Equal(t, int64(5000), views)
}

func TestItem_EmptyStateIsCached(t *testing.T) {
	doc := parse(t, "en", `<ytd-rich-item-renderer><a id="video-title">Untitled</a></ytd-rich-item-renderer>`)
	it := firstItem(t, doc)

	_, ok := it.Views()
	assert.False(t, ok)
	assert.Equal(t, Empty, it.Metadata().Views.State())
	assert.Equal(t, "", it.Channel())
	assert.Equal(t, Empty, it.Metadata().Channel.State())
}

func TestItem_LabelFallback(t *testing.T) {
	doc := parse(t, "en", `<ytd-video-renderer>`+
		`<a id="video-title" aria-label="Cooking pasta by Chef 12,345 views 2 weeks ago 10 minutes">Cooking pasta</a>`+
		`</ytd-video-renderer>`)
	it := firstItem(t, doc)

	views, ok := it.Views()
	require.True(t, ok)
	assert.Equal(t, int64(12345), views)

	elapsed, ok := it.ElapsedMinutes()
	require.True(t, ok)
	assert.Equal(t, int64(2*10080), elapsed)
}

func TestItem_LiveViewers(t *testing.T) {
	doc := parse(t, "en", videoCard("Live now", "Chan", "1.2K watching"))
	it := firstItem(t, doc)

	assert.True(t, it.IsLive())
	viewers, _ := it.Viewers()
	assert.Equal(t, int64(1200), viewers)

	_, ok := it.Views()
	assert.False(t, ok)
}

func TestItem_ChannelFromAvatarLabel(t *testing.T) {
	doc := parse(t, "zh-TW", `<yt-lockup-view-model>`+
		`<yt-decorated-avatar-view-model aria-label="前往頻道：電影頻道"></yt-decorated-avatar-view-model>`+
		`</yt-lockup-view-model>`)
	it := firstItem(t, doc)

	assert.Equal(t, "電影頻道", it.Channel())
}

func TestItem_ChannelSkipsUnlabelledAvatar(t *testing.T) {
	doc := parse(t, "en", `<ytd-rich-item-renderer>`+
		`<a id="avatar-link" href="/@studio"><img src="a.png"></a>`+
		`<a id="video-title-link">Clip</a>`+
		`<ytd-channel-name><a href="/@studio">Studio</a></ytd-channel-name>`+
		`</ytd-rich-item-renderer>`)
	it := firstItem(t, doc)

	assert.Equal(t, "Studio", it.Channel())
}

func TestCleanChannelName(t *testing.T) {
	assert.Equal(t, "Foo", CleanChannelName("Go to channel: Foo"))
	assert.Equal(t, "Foo", CleanChannelName("Foo's channel"))
	assert.Equal(t, "电影", CleanChannelName("前往频道：电影"))
	assert.Equal(t, "Discovery Channel", CleanChannelName("  Discovery   Channel "))
}

func TestItem_StructuralFlags(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		check func(*Item) bool
	}{
		{"shorts link", `<ytd-rich-item-renderer><a href="/shorts/xyz">x</a></ytd-rich-item-renderer>`, (*Item).IsShorts},
		{"shorts tag", `<ytd-reel-item-renderer></ytd-reel-item-renderer>`, (*Item).IsShorts},
		{"shorts hashtag", `<ytd-rich-item-renderer><a id="video-title">fun #shorts</a></ytd-rich-item-renderer>`, (*Item).IsShorts},
		{"shorts hashtag outside title", `<ytd-rich-item-renderer><a id="video-title">fun clip</a><div id="description-text">best moments #Shorts</div></ytd-rich-item-renderer>`, (*Item).IsShorts},
		{"members badge", `<ytd-rich-item-renderer><div class="badge badge-style-type-members-only">x</div></ytd-rich-item-renderer>`, (*Item).IsMembersOnly},
		{"members text", `<ytd-rich-item-renderer><span>Members only</span></ytd-rich-item-renderer>`, (*Item).IsMembersOnly},
		{"playlist tag", `<ytd-playlist-renderer></ytd-playlist-renderer>`, (*Item).IsPlaylist},
		{"mix title", `<ytd-rich-item-renderer><a id="video-title">Mix - Artist</a></ytd-rich-item-renderer>`, (*Item).IsMix},
		{"watch later", `<ytd-rich-item-renderer><a href="/playlist?list=WL">x</a></ytd-rich-item-renderer>`, (*Item).IsUserPlaylist},
		{"private label", `<ytd-rich-item-renderer><div id="metadata-line"><span>Private</span></div></ytd-rich-item-renderer>`, (*Item).IsUserPlaylist},
		{"force hidden", `<ytd-rich-item-renderer hidden></ytd-rich-item-renderer>`, (*Item).ForceHidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := firstItem(t, parse(t, "en", tt.body))
			assert.True(t, tt.check(it))
		})
	}
}

func TestItem_PublicListIsNotUserPlaylist(t *testing.T) {
	it := firstItem(t, parse(t, "en", `<ytd-playlist-renderer><a href="/playlist?list=PL123">x</a></ytd-playlist-renderer>`))
	assert.True(t, it.IsPlaylist())
	assert.False(t, it.IsUserPlaylist())
}

func TestItem_SectionTitle(t *testing.T) {
	it := firstItem(t, parse(t, "en", `<ytd-rich-section-renderer><div id="title-text"> Breaking   news </div></ytd-rich-section-renderer>`))
	assert.Equal(t, KindSection, it.Kind())
	assert.Equal(t, "Breaking news", it.SectionTitle())
}

func TestMissingMetadata(t *testing.T) {
	it := firstItem(t, parse(t, "en", videoCard("Title", "", "1 view")))
	assert.Equal(t, []string{"channel"}, MissingMetadata(it))

	it.Selection().Find("#metadata-line").Remove()
	assert.Equal(t, []string{"channel", "metadata"}, MissingMetadata(it))
}
