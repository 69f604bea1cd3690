package models

import "time"

// Comment is the flat comment document as stored in Firestore. Replies point
// at their parent through ParentID; top-level comments have an empty ParentID.
type Comment struct {
	CommentID string     `firestore:"commentId" json:"commentId"`
	PostID    string     `firestore:"postId" json:"postId"`
	ParentID  string     `firestore:"parentId" json:"parentId,omitempty"`
	AuthorID  string     `firestore:"authorId" json:"authorId"`
	Text      string     `firestore:"text" json:"text"`
	LikedBy   []string   `firestore:"likedBy" json:"likedBy"`
	CreatedAt time.Time  `firestore:"createdAt" json:"createdAt"`
	EditedAt  *time.Time `firestore:"editedAt,omitempty" json:"editedAt,omitempty"`
}

// CommentNode is one node of the rebuilt reply forest.
type CommentNode struct {
	Comment

	// Children holds direct replies, ascending by CreatedAt.
	Children []*CommentNode `json:"children"`

	// TotalDescendantCount counts every node reachable through Children,
	// not just direct replies.
	TotalDescendantCount int `json:"totalDescendantCount"`

	// LikeCount is the deduplicated size of LikedBy.
	LikeCount int `json:"likeCount"`

	// LikedByMe reports whether the requesting user is in LikedBy.
	LikedByMe bool `json:"likedByMe"`
}

// EditState tracks the lifecycle of an in-flight comment edit.
type EditState string

const (
	EditStateIdle    EditState = "idle"
	EditStateEditing EditState = "editing"
	EditStateSaving  EditState = "saving"
)

// AddCommentRequest is the request body for posting a comment or reply.
type AddCommentRequest struct {
	Text     string `json:"text" binding:"required"`
	ParentID string `json:"parentId"`
}

// EditCommentRequest is the request body for editing a comment.
type EditCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ForestResponse is the comment listing response for one post.
type ForestResponse struct {
	PostID string         `json:"postId"`
	Roots  []*CommentNode `json:"roots"`
	Total  int            `json:"total"`
}
