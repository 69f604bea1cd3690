package models

import (
	"errors"
	"sort"
)

// Category identifies one notification classification with its own data
// source and read-tracking model.
type Category string

const (
	CategoryApplications  Category = "applications"
	CategoryListings      Category = "listings"
	CategoryTransfers     Category = "transfers"
	CategoryRegistrations Category = "registrations"
	CategoryIncidents     Category = "incidents"
	CategorySocial        Category = "social"
	CategoryFriendReqs    Category = "friendRequests"
	CategoryAdminActions  Category = "adminActions"
	CategoryAnnouncements Category = "announcements"
)

// ReadModel selects how unread status is derived for a category.
type ReadModel string

const (
	// ReadModelCursor derives unread from a local monotonic last-seen timestamp.
	ReadModelCursor ReadModel = "cursor"
	// ReadModelFlag derives unread from a mutable read field on the record itself.
	ReadModelFlag ReadModel = "flag"
)

// CategorySpec describes how one category is queried and tracked.
type CategorySpec struct {
	Category Category

	// Collection is the Firestore collection holding this category's documents.
	Collection string

	// PrincipalField filters documents to the current user. Empty means the
	// category is a broadcast feed (listings, announcements).
	PrincipalField string

	// ReadModel selects cursor vs. flag unread tracking.
	ReadModel ReadModel

	// Owned reports whether the current user may delete the underlying
	// records remotely. Non-owned categories are hide-only.
	Owned bool

	// Priority breaks timestamp ties in the merged timeline (lower first).
	Priority int
}

// categorySpecs is the fixed registry of all feed categories.
var categorySpecs = map[Category]CategorySpec{
	CategoryApplications:  {CategoryApplications, "adoptionApplications", "applicantId", ReadModelCursor, false, 0},
	CategoryListings:      {CategoryListings, "petListings", "", ReadModelCursor, false, 1},
	CategoryTransfers:     {CategoryTransfers, "transferRequests", "ownerId", ReadModelCursor, false, 2},
	CategoryRegistrations: {CategoryRegistrations, "petRegistrations", "ownerId", ReadModelCursor, false, 3},
	CategoryIncidents:     {CategoryIncidents, "incidentReports", "reporterId", ReadModelCursor, true, 4},
	CategorySocial:        {CategorySocial, "interactions", "recipientId", ReadModelFlag, true, 5},
	CategoryFriendReqs:    {CategoryFriendReqs, "friendRequests", "targetUserId", ReadModelFlag, true, 6},
	CategoryAdminActions:  {CategoryAdminActions, "adminActions", "affectedUserId", ReadModelCursor, false, 7},
	CategoryAnnouncements: {CategoryAnnouncements, "announcements", "", ReadModelCursor, false, 8},
}

// AllCategories returns every registered category in priority order.
func AllCategories() []Category {
	out := make([]Category, 0, len(categorySpecs))
	for c := range categorySpecs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return categorySpecs[out[i]].Priority < categorySpecs[out[j]].Priority
	})
	return out
}

// SpecFor returns the registry entry for a category.
func SpecFor(c Category) (CategorySpec, bool) {
	spec, ok := categorySpecs[c]
	return spec, ok
}

// ParseCategory validates a category string from a request path or query.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categorySpecs[c]; !ok {
		return "", errors.New("unknown_category")
	}
	return c, nil
}
