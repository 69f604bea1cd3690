package models

import "time"

// EpochZero is the canonical timestamp for documents whose creation time is
// missing or unparseable. Under descending sort these events land last.
var EpochZero = time.Unix(0, 0).UTC()

// NotificationEvent is the normalized shape every category adapter emits.
// Events are ephemeral: rebuilt on every snapshot push, identified only by
// (Category, ID).
type NotificationEvent struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Payload   Payload   `json:"payload"`

	// Read mirrors the record's own read flag for flag-model categories.
	// Cursor-model categories leave it false; unread status comes from the
	// local cursor instead.
	Read bool `json:"read"`
}

// Payload is the category-specific portion of an event. Each category has
// exactly one concrete payload type so renderers can switch exhaustively.
type Payload interface {
	Kind() Category
}

// ApplicationPayload carries adoption application status updates.
type ApplicationPayload struct {
	ApplicationID string `json:"applicationId"`
	PetName       string `json:"petName"`
	Status        string `json:"status"`
}

func (ApplicationPayload) Kind() Category { return CategoryApplications }

// ListingPayload carries newly listed pets.
type ListingPayload struct {
	PetID    string `json:"petId"`
	PetName  string `json:"petName"`
	Breed    string `json:"breed"`
	ImageURL string `json:"imageUrl"`
}

func (ListingPayload) Kind() Category { return CategoryListings }

// TransferPayload carries ownership transfer requests.
type TransferPayload struct {
	TransferID   string `json:"transferId"`
	PetName      string `json:"petName"`
	FromUsername string `json:"fromUsername"`
	Status       string `json:"status"`
}

func (TransferPayload) Kind() Category { return CategoryTransfers }

// RegistrationPayload carries pet registration outcomes.
type RegistrationPayload struct {
	PetID   string `json:"petId"`
	PetName string `json:"petName"`
	Status  string `json:"status"`
}

func (RegistrationPayload) Kind() Category { return CategoryRegistrations }

// IncidentPayload carries the user's own lost/found incident alerts.
type IncidentPayload struct {
	IncidentID   string `json:"incidentId"`
	PetName      string `json:"petName"`
	IncidentType string `json:"incidentType"` // "lost", "found", "stray"
	Location     string `json:"location"`
}

func (IncidentPayload) Kind() Category { return CategoryIncidents }

// SocialPayload carries likes and comments on the user's posts.
type SocialPayload struct {
	PostID     string `json:"postId"`
	ActorID    string `json:"actorId"`
	ActorName  string `json:"actorName"`
	Action     string `json:"action"` // "like", "comment", "reply"
	CommentTxt string `json:"commentText,omitempty"`
}

func (SocialPayload) Kind() Category { return CategorySocial }

// FriendRequestPayload carries incoming friend requests.
type FriendRequestPayload struct {
	RequestID     string `json:"requestId"`
	FromUserID    string `json:"fromUserId"`
	FromUsername  string `json:"fromUsername"`
	RequestStatus string `json:"requestStatus"`
}

func (FriendRequestPayload) Kind() Category { return CategoryFriendReqs }

// AdminActionPayload carries moderation actions affecting the user.
type AdminActionPayload struct {
	ActionID string `json:"actionId"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

func (AdminActionPayload) Kind() Category { return CategoryAdminActions }

// AnnouncementPayload carries broadcast announcements.
type AnnouncementPayload struct {
	AnnouncementID string `json:"announcementId"`
	Body           string `json:"body"`
}

func (AnnouncementPayload) Kind() Category { return CategoryAnnouncements }
