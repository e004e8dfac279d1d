package settings

// Defaults returns the built-in configuration.
func Defaults() *Settings {
	return &Settings{
		Rules: map[string]bool{
			RuleShorts:      false,
			RuleMembersOnly: false,
			RuleLowView:     false,
			RuleDuration:    false,
			RuleMixPlaylist: false,
		},
		// The strong rules only match a whole badge or button label, never a
		// phrase inside a title.
		TextRules: []TextRule{
			{Key: "ad_sponsor", Enabled: true, Patterns: []string{
				"=Sponsored", "=Ad", "=赞助商广告", "=贊助商廣告", "=広告", "=광고", "=Patrocinado", "=Gesponsert", "=Sponsorisé",
			}},
			{Key: "premium_promo", Enabled: true, Patterns: []string{
				"=Try it free", "=Get YouTube Premium", "=免费试用", "=免費試用", "=無料トライアル",
			}},
			{Key: "news_shelf", Enabled: false, Patterns: []string{
				"Breaking news", "Top news", "热门新闻", "焦點新聞", "ニュース速報",
			}},
			{Key: "explore_topics", Enabled: false, Patterns: []string{
				"Explore more topics", "探索更多主题", "探索更多主題",
			}},
			{Key: "playables", Enabled: false, Patterns: []string{
				"YouTube Playables", "=Playables",
			}},
			{Key: "fundraiser", Enabled: false, Patterns: []string{
				"Fundraiser", "募款活动", "募款活動",
			}},
		},
		LowViewThreshold: 1000,
		GracePeriodHours: 4,
		RegionConvert:    true,
	}
}
