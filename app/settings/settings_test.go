package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	content := `
rules:
  shorts: true
  low_view: true
low_view_threshold: 500
grace_period_hours: 2
duration_min: 300
keyword_blacklist:
  - 预告
  - "=Live"
channel_whitelist:
  - Friendly Channel
region_convert: false
diagnostics: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.True(t, s.Enabled(RuleShorts))
	assert.True(t, s.Enabled(RuleLowView))
	assert.False(t, s.Enabled(RuleMixPlaylist))
	assert.Equal(t, int64(500), s.LowViewThreshold)
	assert.Equal(t, int64(2), s.GracePeriodHours)
	assert.Equal(t, int64(300), s.DurationMin)
	assert.Equal(t, []string{"预告", "=Live"}, s.KeywordBlacklist)
	assert.Equal(t, []string{"Friendly Channel"}, s.ChannelWhitelist)
	assert.False(t, s.RegionConvert)
	assert.True(t, s.Diagnostics)
	assert.Len(t, s.TextRules, len(Defaults().TextRules), "text rules keep their defaults")
}

func TestLoadFile_MissingFileUsesDefaults(t *testing.T) {
	s, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative threshold": "low_view_threshold: -1",
		"negative duration":  "duration_max: -5",
		"inverted bounds":    "duration_min: 600\nduration_max: 300",
		"missing rule key":   "text_rules:\n  - enabled: true\n    patterns: [x]",
		"duplicate rule key": "text_rules:\n  - key: a\n  - key: a",
		"bad yaml":           "rules: [",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestClone_IsDeep(t *testing.T) {
	s := Defaults()
	s.KeywordBlacklist = []string{"a"}

	c := s.Clone()
	c.KeywordBlacklist[0] = "b"
	c.Rules[RuleShorts] = true
	c.TextRules[0].Patterns[0] = "changed"

	assert.Equal(t, "a", s.KeywordBlacklist[0])
	assert.False(t, s.Rules[RuleShorts])
	assert.Equal(t, "=Sponsored", s.TextRules[0].Patterns[0])
}

func TestManager_VersionsChangeOnlyForModifiedLists(t *testing.T) {
	m := NewManager(Defaults())

	_, kwBefore := m.Current().List(ListKeywordBlacklist)
	_, chBefore := m.Current().List(ListChannelBlacklist)
	_, adBefore := m.Current().List(TextRulePrefix + "ad_sponsor")

	_, err := m.SetList(ListKeywordBlacklist, []string{"预告"})
	require.NoError(t, err)

	entries, kwAfter := m.Current().List(ListKeywordBlacklist)
	_, chAfter := m.Current().List(ListChannelBlacklist)
	_, adAfter := m.Current().List(TextRulePrefix + "ad_sponsor")

	assert.Equal(t, []string{"预告"}, entries)
	assert.NotEqual(t, kwBefore, kwAfter)
	assert.Equal(t, chBefore, chAfter)
	assert.Equal(t, adBefore, adAfter)
}

func TestManager_ReloadNeverReusesVersions(t *testing.T) {
	a := NewManager(Defaults())
	b := NewManager(Defaults())

	_, va := a.Current().List(ListKeywordBlacklist)
	_, vb := b.Current().List(ListKeywordBlacklist)
	assert.NotEqual(t, va, vb)
}

func TestManager_SetListRejectsUnknownList(t *testing.T) {
	m := NewManager(nil)
	_, err := m.SetList("favourites", []string{"x"})
	assert.Error(t, err)
}

func TestManager_ReplaceValidatesAndNotifies(t *testing.T) {
	m := NewManager(nil)

	var published []*Settings
	m.OnChange(func(s *Settings) { published = append(published, s) })

	bad := Defaults()
	bad.LowViewThreshold = -1
	_, err := m.Replace(bad)
	assert.Error(t, err)
	assert.Empty(t, published)

	good := Defaults()
	good.Diagnostics = true
	s, err := m.Replace(good)
	require.NoError(t, err)
	assert.True(t, m.Current().Diagnostics)
	assert.Equal(t, []*Settings{s}, published)

	good.Diagnostics = false
	assert.True(t, m.Current().Diagnostics, "published snapshot is detached from the caller's copy")
}

type memoryStore map[string]string

func (s memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s[key]
	return v, ok, nil
}

func (s memoryStore) Set(_ context.Context, key, value string) error {
	s[key] = value
	return nil
}

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	store := memoryStore{}

	s := Defaults()
	s.ChannelBlacklist = []string{"Spam Channel"}
	s.Rules[RuleShorts] = true
	require.NoError(t, Save(ctx, store, s))

	m := NewManager(nil)
	require.NoError(t, m.Restore(ctx, store))
	assert.Equal(t, []string{"Spam Channel"}, m.Current().ChannelBlacklist)
	assert.True(t, m.Current().Enabled(RuleShorts))
}

func TestRestore_EmptyStoreKeepsCurrent(t *testing.T) {
	m := NewManager(nil)
	before := m.Current()
	require.NoError(t, m.Restore(context.Background(), memoryStore{}))
	assert.Same(t, before, m.Current())
}
