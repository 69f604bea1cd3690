package models

// FeedResponse is the merged timeline returned to the client.
type FeedResponse struct {
	Events []NotificationEvent `json:"events"`
	Badge  int                 `json:"badge"`
	Label  string              `json:"badgeLabel"`
}

// BadgeResponse carries just the unread badge.
type BadgeResponse struct {
	Badge int    `json:"badge"`
	Label string `json:"badgeLabel"`
}

// MarkReadRequest marks a single event as read.
type MarkReadRequest struct {
	Category string `json:"category" binding:"required"`
	EventID  string `json:"eventId" binding:"required"`
}

// HideRequest dismisses a single event locally.
type HideRequest struct {
	Category string `json:"category" binding:"required"`
	EventID  string `json:"eventId" binding:"required"`
}

// UnreadCountsResponse reports per-category unread counts.
type UnreadCountsResponse struct {
	Counts map[Category]int `json:"counts"`
	Badge  int              `json:"badge"`
	Label  string           `json:"badgeLabel"`
}
