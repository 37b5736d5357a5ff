package handler

import (
	"net/http"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments   repository.CommentRepositoryInterface
	cards      repository.CardRepositoryInterface
	projects   repository.ProjectRepositoryInterface
	activities repository.ActivityRepositoryInterface
}

func NewCommentHandler(comments repository.CommentRepositoryInterface, cards repository.CardRepositoryInterface, projects repository.ProjectRepositoryInterface, activities repository.ActivityRepositoryInterface) *CommentHandler {
	return &CommentHandler{
		comments:   comments,
		cards:      cards,
		projects:   projects,
		activities: activities,
	}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.cards.GetByID(c.Request.Context(), cardID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if card == nil {
		respondError(c, http.StatusNotFound, "Card not found")
		return
	}

	if !requireProjectRole(c, h.projects, card.ProjectID, userID, model.RoleViewer) {
		return
	}

	comments, err := h.comments.GetByCardID(c.Request.Context(), cardID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(comments), comments)
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.cards.GetByID(c.Request.Context(), cardID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if card == nil {
		respondError(c, http.StatusNotFound, "Card not found")
		return
	}

	if !requireProjectRole(c, h.projects, card.ProjectID, userID, model.RoleMember) {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide comment content")
		return
	}

	comment := &model.Comment{
		CardID:  cardID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
		model.ActionAddedComment, model.ActivityDetails{CardTitle: card.Title}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, comment)
}

// Update is author-only: not even an admin can rewrite someone else's words.
func (h *CommentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), commentID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if comment == nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	if comment.UserID != userID {
		respondError(c, http.StatusForbidden, "Only the author can edit a comment")
		return
	}

	card, err := h.cards.GetByID(c.Request.Context(), comment.CardID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if card == nil {
		respondError(c, http.StatusNotFound, "Card not found")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide comment content")
		return
	}
	comment.Content = req.Content

	if err := h.comments.Update(c.Request.Context(), comment); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
		model.ActionUpdatedComment, model.ActivityDetails{CardTitle: card.Title}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, comment)
}

// Delete is allowed for the author and for project admins.
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(c.Request.Context(), commentID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if comment == nil {
		respondError(c, http.StatusNotFound, "Comment not found")
		return
	}

	card, err := h.cards.GetByID(c.Request.Context(), comment.CardID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if card == nil {
		respondError(c, http.StatusNotFound, "Card not found")
		return
	}

	if comment.UserID != userID {
		if !requireProjectRole(c, h.projects, card.ProjectID, userID, model.RoleAdmin) {
			return
		}
	}

	if err := h.comments.Delete(c.Request.Context(), commentID); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
		model.ActionDeletedComment, model.ActivityDetails{CardTitle: card.Title}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}
