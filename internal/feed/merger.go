package feed

import (
	"sort"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// FilterAll selects every category when passed to Merge.
const FilterAll = models.Category("")

// Merge combines the latest snapshot from every category into a single
// timeline: hidden (category,id) pairs are dropped, duplicates collapse to
// their first occurrence, and the result is ordered by timestamp descending
// with ties broken by category priority then id. Pure and allocation-light,
// safe to rerun on every snapshot push.
func Merge(
	snapshots map[models.Category][]models.NotificationEvent,
	hidden func(models.Category, string) bool,
	filter models.Category,
) []models.NotificationEvent {
	total := 0
	for _, events := range snapshots {
		total += len(events)
	}

	type key struct {
		category models.Category
		id       string
	}

	merged := make([]models.NotificationEvent, 0, total)
	seen := make(map[key]struct{}, total)

	for category, events := range snapshots {
		if filter != FilterAll && category != filter {
			continue
		}
		for _, ev := range events {
			k := key{ev.Category, ev.ID}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if hidden != nil && hidden(ev.Category, ev.ID) {
				continue
			}
			merged = append(merged, ev)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		a, b := merged[i], merged[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if a.Category != b.Category {
			return categoryPriority(a.Category) < categoryPriority(b.Category)
		}
		return a.ID < b.ID
	})

	return merged
}

func categoryPriority(c models.Category) int {
	spec, ok := models.SpecFor(c)
	if !ok {
		return int(^uint(0) >> 1)
	}
	return spec.Priority
}
