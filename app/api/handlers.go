package api

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/feed-comb/app/cfg"
	"github.com/lysyi3m/feed-comb/app/database"
	"github.com/lysyi3m/feed-comb/app/session"
	"github.com/lysyi3m/feed-comb/app/settings"
)

const (
	maxBodySize         = 16 << 20
	defaultRecentLimit  = 50
	maxRecentLimit      = 500
	snapshotContentType = "text/html; charset=utf-8"
)

// NewHandler builds the HTTP handlers. Settings changes are persisted by
// whatever the manager's change hooks are wired to.
func NewHandler(sessions *session.Registry, feeds FeedFilterInterface, manager *settings.Manager,
	suppressions database.SuppressionReader) *Handler {
	return &Handler{
		sessions:     sessions,
		feeds:        feeds,
		settings:     manager,
		suppressions: suppressions,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.GetVersion(),
		"sessions":  h.sessions.Len(),
	})
}

func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.sessions.Create(c.Request.Context(), req.URL, strings.NewReader(req.HTML), snapshotContentType)
	if err != nil {
		slog.Error("Failed to create session", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         s.ID,
		"url":        req.URL,
		"created_at": s.CreatedAt,
	})
}

// session resolves the :id parameter, answering 404 itself when unknown.
func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	id := c.Param("id")
	s, ok := h.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return s, true
}

func (h *Handler) GetSessionStats(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	snap, err := s.Stats(c.Request.Context())
	if err != nil {
		slog.Error("Failed to read session stats", "session", s.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read statistics"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

func (h *Handler) GetSessionDocument(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if c.Query("drain") == "true" {
		if _, err := s.Drain(c.Request.Context()); err != nil {
			slog.Error("Failed to drain session", "session", s.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process document"})
			return
		}
	}

	html, err := s.Render(c.Request.Context())
	if err != nil {
		slog.Error("Failed to render session document", "session", s.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render document"})
		return
	}

	c.Data(http.StatusOK, snapshotContentType, []byte(html))
}

func (h *Handler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PostMutations(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req mutationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, err := s.Mutate(c.Request.Context(), req.Ops)
	if err != nil {
		slog.Warn("Mutation batch rejected", "session", s.ID, "applied", applied, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "applied": applied})
		return
	}

	c.JSON(http.StatusOK, gin.H{"applied": applied})
}

func (h *Handler) PostNavigate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req navigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.Navigate(c.Request.Context(), req.URL); err != nil {
		slog.Error("Failed to navigate session", "session", s.ID, "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to navigate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": req.URL})
}

func (h *Handler) PostReset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if err := s.Reset(c.Request.Context()); err != nil {
		slog.Error("Failed to reset session", "session", s.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) PostFeedFilter(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty feed"})
		return
	}

	result, err := h.feeds.Run(data, c.Request.URL.Path)
	if err != nil {
		slog.Error("Feed filtering failed", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(result.Kept)))
	c.Header("X-Feed-Suppressed", strconv.Itoa(len(result.Hidden)))
	c.String(http.StatusOK, result.RSS)
}

func (h *Handler) APIGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Current())
}

func (h *Handler) APIPutSettings(c *gin.Context) {
	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	next, err := settings.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.settings.Replace(next)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, current)
}

func (h *Handler) APIPutList(c *gin.Context) {
	name := c.Param("name")
	if !settings.IsList(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown list"})
		return
	}

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.settings.SetList(name, req.Entries)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, version := current.List(name)
	c.JSON(http.StatusOK, gin.H{
		"name":    name,
		"entries": entries,
		"version": version,
	})
}

func (h *Handler) APIGetSuppressions(c *gin.Context) {
	if h.suppressions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Suppression journal disabled"})
		return
	}

	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRecentLimit)
	}

	ctx := c.Request.Context()
	recent, err := h.suppressions.Recent(ctx, limit)
	if err != nil {
		slog.Error("Database error", "operation", "recent_suppressions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	counts, err := h.suppressions.CountByReason(ctx)
	if err != nil {
		slog.Error("Database error", "operation", "count_suppressions", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if recent == nil {
		recent = []database.Suppression{}
	}
	c.JSON(http.StatusOK, gin.H{
		"recent":    recent,
		"by_reason": counts,
	})
}
