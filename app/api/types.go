package api

import (
	"github.com/lysyi3m/feed-comb/app/database"
	"github.com/lysyi3m/feed-comb/app/feed"
	"github.com/lysyi3m/feed-comb/app/session"
	"github.com/lysyi3m/feed-comb/app/settings"
)

type FeedFilterInterface interface {
	Run(data []byte, selfPath string) (*session.FeedResult, error)
}

var _ FeedFilterInterface = (*session.FeedFilter)(nil)

type Handler struct {
	sessions     *session.Registry
	feeds        FeedFilterInterface
	settings     *settings.Manager
	suppressions database.SuppressionReader
}

type createSessionRequest struct {
	URL  string `json:"url" binding:"required"`
	HTML string `json:"html" binding:"required"`
}

type mutationsRequest struct {
	Ops []feed.Op `json:"ops" binding:"required"`
}

type navigateRequest struct {
	URL string `json:"url" binding:"required"`
}

type listRequest struct {
	Entries []string `json:"entries"`
}
