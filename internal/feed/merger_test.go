package feed

import (
	"testing"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"github.com/stretchr/testify/assert"
)

func noHidden(models.Category, string) bool { return false }

func TestMerge_SortsByTimestampDescending(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryApplications: {ev(models.CategoryApplications, "a", 10), ev(models.CategoryApplications, "b", 40)},
		models.CategoryListings:     {ev(models.CategoryListings, "c", 30), ev(models.CategoryListings, "d", 20)},
	}

	merged := Merge(snapshots, noHidden, FilterAll)

	ids := []string{}
	for _, e := range merged {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"b", "c", "d", "a"}, ids)
}

func TestMerge_SortedRegardlessOfArrivalOrder(t *testing.T) {
	// Same events keyed in the opposite order must produce the same timeline.
	a := map[models.Category][]models.NotificationEvent{
		models.CategoryApplications: {ev(models.CategoryApplications, "a", 10)},
		models.CategoryListings:     {ev(models.CategoryListings, "b", 20)},
	}
	b := map[models.Category][]models.NotificationEvent{
		models.CategoryListings:     {ev(models.CategoryListings, "b", 20)},
		models.CategoryApplications: {ev(models.CategoryApplications, "a", 10)},
	}

	assert.Equal(t, Merge(a, noHidden, FilterAll), Merge(b, noHidden, FilterAll))
}

func TestMerge_ExcludesHiddenPairs(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings: {ev(models.CategoryListings, "x", 1), ev(models.CategoryListings, "y", 2)},
	}
	hidden := func(c models.Category, id string) bool {
		return c == models.CategoryListings && id == "x"
	}

	merged := Merge(snapshots, hidden, FilterAll)

	assert.Len(t, merged, 1)
	assert.Equal(t, "y", merged[0].ID)
}

func TestMerge_DeduplicatesByCategoryAndID(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings: {
			ev(models.CategoryListings, "x", 5),
			ev(models.CategoryListings, "x", 5),
		},
	}

	merged := Merge(snapshots, noHidden, FilterAll)

	assert.Len(t, merged, 1)
}

func TestMerge_SameIDDifferentCategoryIsNotADuplicate(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings:     {ev(models.CategoryListings, "x", 5)},
		models.CategoryApplications: {ev(models.CategoryApplications, "x", 5)},
	}

	merged := Merge(snapshots, noHidden, FilterAll)

	assert.Len(t, merged, 2)
}

func TestMerge_TimestampTieBrokenByCategoryPriority(t *testing.T) {
	// applications has a lower priority index than announcements.
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryAnnouncements: {ev(models.CategoryAnnouncements, "n", 7)},
		models.CategoryApplications:  {ev(models.CategoryApplications, "m", 7)},
	}

	merged := Merge(snapshots, noHidden, FilterAll)

	assert.Equal(t, models.CategoryApplications, merged[0].Category)
	assert.Equal(t, models.CategoryAnnouncements, merged[1].Category)
}

func TestMerge_FullTieBrokenByID(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings: {
			ev(models.CategoryListings, "b", 7),
			ev(models.CategoryListings, "a", 7),
		},
	}

	merged := Merge(snapshots, noHidden, FilterAll)

	assert.Equal(t, "a", merged[0].ID)
	assert.Equal(t, "b", merged[1].ID)
}

func TestMerge_FilterSelectsOneCategory(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings:     {ev(models.CategoryListings, "x", 1)},
		models.CategoryApplications: {ev(models.CategoryApplications, "y", 2)},
	}

	merged := Merge(snapshots, noHidden, models.CategoryListings)

	assert.Len(t, merged, 1)
	assert.Equal(t, models.CategoryListings, merged[0].Category)
}

func TestMerge_EpochZeroEventsSortLast(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings: {
			{ID: "broken", Category: models.CategoryListings, Timestamp: models.EpochZero},
			ev(models.CategoryListings, "ok", 1),
		},
	}

	merged := Merge(snapshots, noHidden, FilterAll)

	assert.Equal(t, "ok", merged[0].ID)
	assert.Equal(t, "broken", merged[1].ID)
}

func TestMerge_NilHiddenFuncAllowed(t *testing.T) {
	snapshots := map[models.Category][]models.NotificationEvent{
		models.CategoryListings: {ev(models.CategoryListings, "x", 1)},
	}

	assert.Len(t, Merge(snapshots, nil, FilterAll), 1)
}

func TestMerge_EmptyInput(t *testing.T) {
	assert.Empty(t, Merge(nil, noHidden, FilterAll))
}
