package feed

import (
	"testing"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"github.com/stretchr/testify/assert"
)

func noneUnread(models.NotificationEvent) bool { return false }

func TestBadge_CountsUnread(t *testing.T) {
	visible := []models.NotificationEvent{
		ev(models.CategoryListings, "a", 1),
		ev(models.CategoryListings, "b", 2),
		ev(models.CategoryListings, "c", 3),
	}
	unread := func(e models.NotificationEvent) bool { return e.ID != "b" }

	assert.Equal(t, 2, Badge(visible, unread))
}

func TestBadge_Empty(t *testing.T) {
	assert.Equal(t, 0, Badge(nil, noneUnread))
}

func TestBadge_ClampsAtCap(t *testing.T) {
	visible := make([]models.NotificationEvent, 150)
	for i := range visible {
		visible[i] = ev(models.CategoryListings, string(rune('a'+i%26)), int64(i))
	}
	unread := func(models.NotificationEvent) bool { return true }

	assert.Equal(t, BadgeCap, Badge(visible, unread))
}

func TestBadgeLabel_BelowCap(t *testing.T) {
	assert.Equal(t, "7", BadgeLabel(7))
}

func TestBadgeLabel_Zero(t *testing.T) {
	assert.Equal(t, "0", BadgeLabel(0))
}

func TestBadgeLabel_AtCap(t *testing.T) {
	assert.Equal(t, "99+", BadgeLabel(BadgeCap))
}
