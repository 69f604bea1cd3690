package repository

import (
	"fmt"
	"time"

	"github.com/moranr123/Pawsafety-sub002/internal/models"
)

// normalizeEvent maps one raw category document to the common event shape.
// Malformed documents are never rejected: missing fields fall back to zero
// values and a missing or unparseable creation time becomes epoch zero, so
// the event still renders, just sorted last.
func normalizeEvent(spec models.CategorySpec, docID string, data map[string]interface{}) models.NotificationEvent {
	ev := models.NotificationEvent{
		ID:        docID,
		Category:  spec.Category,
		Timestamp: docTime(data, "createdAt"),
	}
	if spec.ReadModel == models.ReadModelFlag {
		ev.Read = docBool(data, "read")
	}

	switch spec.Category {
	case models.CategoryApplications:
		pet := docString(data, "petName")
		status := docString(data, "status")
		ev.Title = "Adoption application"
		ev.Subtitle = fmt.Sprintf("Your application for %s is %s", pet, status)
		ev.Payload = models.ApplicationPayload{
			ApplicationID: docID,
			PetName:       pet,
			Status:        status,
		}

	case models.CategoryListings:
		pet := docString(data, "petName")
		breed := docString(data, "breed")
		ev.Title = "New pet listed"
		ev.Subtitle = fmt.Sprintf("%s (%s) is looking for a home", pet, breed)
		ev.Payload = models.ListingPayload{
			PetID:    docID,
			PetName:  pet,
			Breed:    breed,
			ImageURL: docString(data, "imageUrl"),
		}

	case models.CategoryTransfers:
		pet := docString(data, "petName")
		from := docString(data, "fromUsername")
		status := docString(data, "status")
		ev.Title = "Ownership transfer"
		ev.Subtitle = fmt.Sprintf("Transfer of %s from %s: %s", pet, from, status)
		ev.Payload = models.TransferPayload{
			TransferID:   docID,
			PetName:      pet,
			FromUsername: from,
			Status:       status,
		}

	case models.CategoryRegistrations:
		pet := docString(data, "petName")
		status := docString(data, "status")
		ev.Title = "Pet registration"
		ev.Subtitle = fmt.Sprintf("Registration for %s: %s", pet, status)
		ev.Payload = models.RegistrationPayload{
			PetID:   docString(data, "petId"),
			PetName: pet,
			Status:  status,
		}

	case models.CategoryIncidents:
		pet := docString(data, "petName")
		kind := docString(data, "incidentType")
		location := docString(data, "location")
		ev.Title = "Incident alert"
		ev.Subtitle = fmt.Sprintf("%s report for %s near %s", kind, pet, location)
		ev.Payload = models.IncidentPayload{
			IncidentID:   docID,
			PetName:      pet,
			IncidentType: kind,
			Location:     location,
		}

	case models.CategorySocial:
		actor := docString(data, "actorName")
		action := docString(data, "action")
		ev.Title = "Activity on your post"
		switch action {
		case "comment", "reply":
			ev.Subtitle = fmt.Sprintf("%s commented on your post", actor)
		default:
			ev.Subtitle = fmt.Sprintf("%s liked your post", actor)
		}
		ev.Payload = models.SocialPayload{
			PostID:     docString(data, "postId"),
			ActorID:    docString(data, "actorId"),
			ActorName:  actor,
			Action:     action,
			CommentTxt: docString(data, "commentText"),
		}

	case models.CategoryFriendReqs:
		from := docString(data, "fromUsername")
		ev.Title = "Friend request"
		ev.Subtitle = fmt.Sprintf("%s wants to be friends", from)
		ev.Payload = models.FriendRequestPayload{
			RequestID:     docID,
			FromUserID:    docString(data, "fromUserId"),
			FromUsername:  from,
			RequestStatus: docString(data, "status"),
		}

	case models.CategoryAdminActions:
		action := docString(data, "action")
		reason := docString(data, "reason")
		ev.Title = "Account notice"
		ev.Subtitle = fmt.Sprintf("%s: %s", action, reason)
		ev.Payload = models.AdminActionPayload{
			ActionID: docID,
			Action:   action,
			Reason:   reason,
		}

	case models.CategoryAnnouncements:
		body := docString(data, "body")
		ev.Title = docString(data, "title")
		if ev.Title == "" {
			ev.Title = "Announcement"
		}
		ev.Subtitle = body
		ev.Payload = models.AnnouncementPayload{
			AnnouncementID: docID,
			Body:           body,
		}
	}

	return ev
}

func docString(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

func docBool(data map[string]interface{}, key string) bool {
	b, _ := data[key].(bool)
	return b
}

// docTime extracts a timestamp field. Firestore decodes timestamps to
// time.Time; RFC 3339 strings are tolerated for documents written by older
// clients. Anything else normalizes to epoch zero.
func docTime(data map[string]interface{}, key string) time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts.UTC()
		}
	}
	return models.EpochZero
}
