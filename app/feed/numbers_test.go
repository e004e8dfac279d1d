package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestParseCount(t *testing.T) {
	tests := []struct {
		text string
		lang string
		mode CountMode
		want int64
	}{
		{"1.2K views", "en", CountViews, 1200},
		{"1,234 views", "en", CountViews, 1234},
		{"1.2M views", "en", CountViews, 1200000},
		{"12 lakh views", "en-IN", CountViews, 1200000},
		{"12K watching", "en", CountViewers, 12000},
		{"1.5万次观看", "zh-CN", CountViews, 15000},
		{"3.4萬次觀看", "zh-TW", CountViews, 34000},
		{"2億 回視聴", "ja", CountViews, 200000000},
		{"조회수 1.2만회", "ko", CountViews, 12000},
		{"1,2 mil visualizaciones", "es", CountViews, 1200},
		{"2,5 mi de visualizações", "pt-BR", CountViews, 2500000},
		{"1,2 Mio. Aufrufe", "de", CountViews, 1200000},
		{"1.234 Aufrufe", "de", CountViews, 1234},
		{"1 234 567 vues", "fr", CountViews, 1234567},
		{"1,2 млн просмотров", "ru", CountViews, 1200000},
		{"1.7 करोड़ बार देखा गया", "hi", CountViews, 17000000},
		{"2.9K views", "", CountViews, 2900},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseCount(tt.text, tt.mode, LocaleFor(tt.lang))
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCount_Unknown(t *testing.T) {
	for _, text := range []string{"", "No views", "3 days ago", "Streamed 2 weeks ago"} {
		_, ok := ParseCount(text, CountViews, LocaleFor("en"))
		assert.False(t, ok, text)
	}
}

func TestParseCount_ForeignUnitOnLocalizedPage(t *testing.T) {
	tests := []struct {
		text string
		lang string
		want int64
	}{
		{"1K views", "ko", 1000},
		{"2.5M views", "ja", 2500000},
		{"3,4 mil visualizaciones", "de", 3400},
		{"12 views", "ko", 12},
	}

	for _, tt := range tests {
		got, ok := ParseCount(tt.text, CountViews, LocaleFor(tt.lang))
		assert.True(t, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestParseCount_FloorsFractions(t *testing.T) {
	got, ok := ParseCount("1.2345K views", CountViews, LocaleFor("en"))
	assert.True(t, ok)
	assert.Equal(t, int64(1234), got)
}

func TestParseRelativeTime(t *testing.T) {
	tests := []struct {
		text string
		want int64
	}{
		{"3 days ago", 3 * 1440},
		{"2 weeks ago", 2 * 10080},
		{"1 year ago", 525600},
		{"Streamed 5 hours ago", 300},
		{"30 seconds ago", 0},
		{"2天前", 2 * 1440},
		{"3 か月前", 3 * 43200},
		{"vor 2 Tagen", 2 * 1440},
		{"hace 1 mes", 43200},
		{"il y a 4 minutes", 4},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseRelativeTime(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, text := range []string{"", "yesterday", "1.2K views"} {
		_, ok := ParseRelativeTime(text)
		assert.False(t, ok, text)
	}
}

func TestIsRelativeTime(t *testing.T) {
	assert.True(t, IsRelativeTime("3 days ago"))
	assert.True(t, IsRelativeTime("2天前"))
	assert.False(t, IsRelativeTime("1.2K views"))
	assert.False(t, IsRelativeTime("LIVE"))
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		text string
		want int64
		ok   bool
	}{
		{"12:34", 754, true},
		{"1:02:03", 3723, true},
		{"45", 45, true},
		{" 0:59 ", 59, true},
		{"LIVE", 0, false},
		{"SHORTS", 0, false},
		{"1:2:3:4", 0, false},
		{"1:xx", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDuration(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestLocaleFor(t *testing.T) {
	assert.Equal(t, language.TraditionalChinese, LocaleFor("zh-TW").Tag)
	assert.Equal(t, language.SimplifiedChinese, LocaleFor("zh-CN").Tag)
	assert.Equal(t, language.English, LocaleFor("en-GB").Tag)
	assert.Equal(t, language.Und, LocaleFor("").Tag)
	assert.Equal(t, language.Und, LocaleFor("not a tag!").Tag)
}
