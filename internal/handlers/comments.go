package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moranr123/Pawsafety-sub002/internal/models"
	"github.com/moranr123/Pawsafety-sub002/internal/services"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// GetForest returns the rebuilt reply forest for one post
func (h *CommentHandler) GetForest(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID := c.Param("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId is required"})
		return
	}

	forest, err := h.commentService.Forest(c.Request.Context(), postID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, forest)
}

// AddComment posts a comment or reply on a post
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	postID := c.Param("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId is required"})
		return
	}

	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), postID, userID, req.Text, req.ParentID)
	if err != nil {
		if err.Error() == "parent_not_found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "parent_not_found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// BeginEdit marks the caller's own comment as being edited
func (h *CommentHandler) BeginEdit(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	commentID := c.Param("commentId")
	if err := h.commentService.BeginEdit(c.Request.Context(), commentID, userID); err != nil {
		switch err.Error() {
		case "not_comment_author":
			c.JSON(http.StatusForbidden, gin.H{"error": "not_comment_author"})
		case "edit_in_progress":
			c.JSON(http.StatusConflict, gin.H{"error": "edit_in_progress"})
		case "comment_not_found":
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": h.commentService.EditState(commentID)})
}

// CancelEdit returns the caller's comment to idle without saving
func (h *CommentHandler) CancelEdit(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	commentID := c.Param("commentId")
	h.commentService.CancelEdit(commentID)
	c.JSON(http.StatusOK, gin.H{"state": h.commentService.EditState(commentID)})
}

// EditComment submits new text for the caller's own comment
func (h *CommentHandler) EditComment(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	commentID := c.Param("commentId")
	if commentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commentId is required"})
		return
	}

	var req models.EditCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.commentService.EditComment(c.Request.Context(), commentID, userID, req.Text); err != nil {
		switch err.Error() {
		case "not_comment_author":
			c.JSON(http.StatusForbidden, gin.H{"error": "not_comment_author"})
		case "edit_in_progress":
			c.JSON(http.StatusConflict, gin.H{"error": "edit_in_progress"})
		case "comment_not_found":
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteComment removes the caller's own comment
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	commentID := c.Param("commentId")
	if commentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commentId is required"})
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		switch err.Error() {
		case "not_comment_author":
			c.JSON(http.StatusForbidden, gin.H{"error": "not_comment_author"})
		case "comment_not_found":
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleLike flips the caller's like on a comment
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	commentID := c.Param("commentId")
	if commentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "commentId is required"})
		return
	}

	liked, err := h.commentService.ToggleLike(c.Request.Context(), commentID, userID)
	if err != nil {
		if err.Error() == "comment_not_found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "comment_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
