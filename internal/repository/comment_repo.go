package repository

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/moranr123/Pawsafety-sub002/internal/config"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"google.golang.org/api/iterator"
)

type CommentRepository struct {
	client *firestore.Client
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		client: config.FirestoreClient,
	}
}

// ListByPost retrieves the full flat comment set for one post, ascending by
// creation time.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	iter := r.client.Collection("comments").
		Where("postId", "==", postID).
		OrderBy("createdAt", firestore.Asc).
		Documents(ctx)

	var comments []models.Comment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var comment models.Comment
		if err := doc.DataTo(&comment); err != nil {
			continue
		}
		comment.CommentID = doc.Ref.ID
		comments = append(comments, comment)
	}

	return comments, nil
}

// Get retrieves one comment by id.
func (r *CommentRepository) Get(ctx context.Context, commentID string) (*models.Comment, error) {
	doc, err := r.client.Collection("comments").Doc(commentID).Get(ctx)
	if err != nil {
		return nil, errors.New("comment_not_found")
	}

	var comment models.Comment
	if err := doc.DataTo(&comment); err != nil {
		return nil, err
	}
	comment.CommentID = doc.Ref.ID
	return &comment, nil
}

// Create stores a new comment document under its pre-generated id.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	_, err := r.client.Collection("comments").Doc(comment.CommentID).Set(ctx, comment)
	return err
}

// UpdateText replaces a comment's text. Last write wins; there is no version
// check on the document.
func (r *CommentRepository) UpdateText(ctx context.Context, commentID, text string) error {
	now := time.Now()
	_, err := r.client.Collection("comments").Doc(commentID).Update(ctx, []firestore.Update{
		{Path: "text", Value: text},
		{Path: "editedAt", Value: now},
	})
	return err
}

// Delete removes a comment document. Replies keep their parent pointer and
// surface as orphans on the next forest rebuild.
func (r *CommentRepository) Delete(ctx context.Context, commentID string) error {
	_, err := r.client.Collection("comments").Doc(commentID).Delete(ctx)
	return err
}

// AddLike adds a user to the comment's likedBy set.
func (r *CommentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	_, err := r.client.Collection("comments").Doc(commentID).Update(ctx, []firestore.Update{
		{Path: "likedBy", Value: firestore.ArrayUnion(userID)},
	})
	return err
}

// RemoveLike removes a user from the comment's likedBy set.
func (r *CommentRepository) RemoveLike(ctx context.Context, commentID, userID string) error {
	_, err := r.client.Collection("comments").Doc(commentID).Update(ctx, []firestore.Update{
		{Path: "likedBy", Value: firestore.ArrayRemove(userID)},
	})
	return err
}
