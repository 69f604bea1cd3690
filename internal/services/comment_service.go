package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moranr123/Pawsafety-sub002/internal/comments"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"github.com/moranr123/Pawsafety-sub002/internal/repository"
	"github.com/moranr123/Pawsafety-sub002/pkg/utils"
)

// CommentStore is the remote persistence the comment service depends on.
// Implemented by repository.CommentRepository.
type CommentStore interface {
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Get(ctx context.Context, commentID string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	UpdateText(ctx context.Context, commentID, text string) error
	Delete(ctx context.Context, commentID string) error
	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
}

var _ CommentStore = (*repository.CommentRepository)(nil)

type CommentService struct {
	store CommentStore

	mu         sync.Mutex
	editStates map[string]models.EditState
}

func NewCommentService(store CommentStore) *CommentService {
	return &CommentService{
		store:      store,
		editStates: make(map[string]models.EditState),
	}
}

// Forest fetches the flat comment set for a post and rebuilds the reply
// forest in full.
func (s *CommentService) Forest(ctx context.Context, postID, principal string) (*models.ForestResponse, error) {
	flat, err := s.store.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	roots := comments.BuildForest(flat, principal)
	return &models.ForestResponse{
		PostID: postID,
		Roots:  roots,
		Total:  comments.CountNodes(roots),
	}, nil
}

// AddComment posts a comment, or a reply when parentID is set. A reply's
// parent must exist and belong to the same post.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID, text, parentID string) (*models.Comment, error) {
	if err := utils.ValidateCommentText(text); err != nil {
		return nil, err
	}

	if parentID != "" {
		parent, err := s.store.Get(ctx, parentID)
		if err != nil {
			return nil, errors.New("parent_not_found")
		}
		if parent.PostID != postID {
			return nil, errors.New("parent_not_found")
		}
	}

	comment := &models.Comment{
		CommentID: uuid.NewString(),
		PostID:    postID,
		ParentID:  parentID,
		AuthorID:  authorID,
		Text:      text,
		LikedBy:   []string{},
		CreatedAt: time.Now(),
	}
	if err := s.store.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// EditState reports the current edit lifecycle state for a comment.
func (s *CommentService) EditState(commentID string) models.EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.editStates[commentID]
	if !ok {
		return models.EditStateIdle
	}
	return state
}

// BeginEdit transitions a comment from idle to editing for its author.
func (s *CommentService) BeginEdit(ctx context.Context, commentID, userID string) error {
	comment, err := s.store.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return errors.New("not_comment_author")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editStates[commentID] == models.EditStateSaving {
		return errors.New("edit_in_progress")
	}
	s.editStates[commentID] = models.EditStateEditing
	return nil
}

// CancelEdit returns a comment to idle without saving.
func (s *CommentService) CancelEdit(commentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editStates[commentID] == models.EditStateEditing {
		delete(s.editStates, commentID)
	}
}

// EditComment submits new text for a comment: editing → saving → idle, with
// the error surfaced and the state back at idle on failure. There is no edit
// lock — concurrent editors are last-write-wins on the remote record.
func (s *CommentService) EditComment(ctx context.Context, commentID, userID, text string) error {
	if err := utils.ValidateCommentText(text); err != nil {
		return err
	}

	comment, err := s.store.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return errors.New("not_comment_author")
	}

	s.mu.Lock()
	if s.editStates[commentID] == models.EditStateSaving {
		s.mu.Unlock()
		return errors.New("edit_in_progress")
	}
	s.editStates[commentID] = models.EditStateSaving
	s.mu.Unlock()

	err = s.store.UpdateText(ctx, commentID, text)

	s.mu.Lock()
	delete(s.editStates, commentID)
	s.mu.Unlock()

	return err
}

// DeleteComment removes the author's own comment. Replies to it reappear as
// top-level orphans on the next forest rebuild rather than disappearing.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID string) error {
	comment, err := s.store.Get(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return errors.New("not_comment_author")
	}
	return s.store.Delete(ctx, commentID)
}

// ToggleLike flips the user's like on a comment and reports the new state.
func (s *CommentService) ToggleLike(ctx context.Context, commentID, userID string) (bool, error) {
	comment, err := s.store.Get(ctx, commentID)
	if err != nil {
		return false, err
	}

	liked := false
	for _, uid := range comment.LikedBy {
		if uid == userID {
			liked = true
			break
		}
	}

	if liked {
		if err := s.store.RemoveLike(ctx, commentID, userID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := s.store.AddLike(ctx, commentID, userID); err != nil {
		return false, err
	}
	return true, nil
}
