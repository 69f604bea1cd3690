package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moranr123/Pawsafety-sub002/internal/feed"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"github.com/moranr123/Pawsafety-sub002/internal/services"
)

type FeedHandler struct {
	sessions *services.FeedSessionStore
}

func NewFeedHandler(sessions *services.FeedSessionStore) *FeedHandler {
	return &FeedHandler{
		sessions: sessions,
	}
}

// GetFeed returns the merged timeline, optionally filtered to one category
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	filter := feed.FilterAll
	if raw := c.Query("category"); raw != "" {
		category, err := models.ParseCategory(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter = category
	}

	engine := h.sessions.Engine(userID)
	ctx := c.Request.Context()
	badge := engine.Badge(ctx)

	events := engine.Timeline(ctx, filter)
	if events == nil {
		events = []models.NotificationEvent{}
	}

	c.JSON(http.StatusOK, models.FeedResponse{
		Events: events,
		Badge:  badge,
		Label:  feed.BadgeLabel(badge),
	})
}

// GetBadge returns just the unread badge
func (h *FeedHandler) GetBadge(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	badge := h.sessions.Engine(userID).Badge(c.Request.Context())
	c.JSON(http.StatusOK, models.BadgeResponse{
		Badge: badge,
		Label: feed.BadgeLabel(badge),
	})
}

// GetUnreadCounts returns per-category unread counts
func (h *FeedHandler) GetUnreadCounts(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	engine := h.sessions.Engine(userID)
	ctx := c.Request.Context()
	badge := engine.Badge(ctx)

	c.JSON(http.StatusOK, models.UnreadCountsResponse{
		Counts: engine.UnreadCounts(ctx),
		Badge:  badge,
		Label:  feed.BadgeLabel(badge),
	})
}

// MarkRead marks a single event as read
func (h *FeedHandler) MarkRead(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := h.sessions.Engine(userID)
	event, ok := engine.Event(category, req.EventID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "event_not_found"})
		return
	}

	engine.MarkAsRead(c.Request.Context(), event)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllRead marks every visible event as read
func (h *FeedHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	h.sessions.Engine(userID).MarkAllRead(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Hide dismisses a single event locally
func (h *FeedHandler) Hide(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.HideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.sessions.Engine(userID).Hide(c.Request.Context(), category, req.EventID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteEvent hides an event and deletes the remote record for owned categories
func (h *FeedHandler) DeleteEvent(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eventID := c.Param("eventId")
	if eventID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventId is required"})
		return
	}

	engine := h.sessions.Engine(userID)
	spec, _ := models.SpecFor(category)
	if spec.Owned {
		engine.DeleteOwned(c.Request.Context(), category, eventID)
	} else {
		engine.Hide(c.Request.Context(), category, eventID)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteCategory dismisses every visible event in a category
func (h *FeedHandler) DeleteCategory(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	category, err := models.ParseCategory(c.Param("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.sessions.Engine(userID).DeleteAll(c.Request.Context(), category)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
