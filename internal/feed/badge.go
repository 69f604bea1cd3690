package feed

import (
	"strconv"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// BadgeCap is the maximum unread count shown on the badge.
const BadgeCap = 99

// Badge counts visible events satisfying the unread predicate, clamped to
// BadgeCap. Pure: the caller supplies the already hidden-filtered timeline.
func Badge(visible []models.NotificationEvent, unread func(models.NotificationEvent) bool) int {
	count := 0
	for _, ev := range visible {
		if unread(ev) {
			count++
			if count >= BadgeCap {
				return BadgeCap
			}
		}
	}
	return count
}

// BadgeLabel renders a badge count for display, "99+" at the clamp.
func BadgeLabel(count int) string {
	if count >= BadgeCap {
		return strconv.Itoa(BadgeCap) + "+"
	}
	return strconv.Itoa(count)
}
