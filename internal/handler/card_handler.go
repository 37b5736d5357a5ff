package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cards      repository.CardRepositoryInterface
	statuses   repository.StatusRepositoryInterface
	projects   repository.ProjectRepositoryInterface
	tags       repository.TagRepositoryInterface
	activities repository.ActivityRepositoryInterface
}

func NewCardHandler(cards repository.CardRepositoryInterface, statuses repository.StatusRepositoryInterface, projects repository.ProjectRepositoryInterface, tags repository.TagRepositoryInterface, activities repository.ActivityRepositoryInterface) *CardHandler {
	return &CardHandler{
		cards:      cards,
		statuses:   statuses,
		projects:   projects,
		tags:       tags,
		activities: activities,
	}
}

type CreateCardRequest struct {
	Title       string         `json:"title" binding:"required,max=200"`
	Description string         `json:"description"`
	StatusID    string         `json:"status_id"`
	AssignedTo  string         `json:"assigned_to"`
	Priority    model.Priority `json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
	Estimate    *float64       `json:"estimate"`
}

type UpdateCardRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	StatusID    string         `json:"status_id"`
	AssignedTo  *string        `json:"assigned_to"`
	Priority    model.Priority `json:"priority"`
	DueDate     *time.Time     `json:"due_date"`
	Estimate    *float64       `json:"estimate"`
}

// CardOrder carries no "required" binding: an empty column legitimately
// reorders with an empty array, which gin's required tag would reject.
type ReorderCardsRequest struct {
	CardOrder []uuid.UUID `json:"card_order"`
}

type AddTagRequest struct {
	TagID string `json:"tag_id" binding:"required"`
}

func (h *CardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if project == nil {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}

	if !requireProjectRole(c, h.projects, projectID, userID, model.RoleViewer) {
		return
	}

	cards, err := h.cards.GetByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(cards), cards)
}

// GetByStatus lists one column's cards in position order.
func (h *CardHandler) GetByStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	statusID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.statuses.GetByID(c.Request.Context(), statusID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if status == nil {
		respondError(c, http.StatusNotFound, "Status not found")
		return
	}

	if !requireProjectRole(c, h.projects, status.ProjectID, userID, model.RoleViewer) {
		return
	}

	cards, err := h.cards.GetByStatusID(c.Request.Context(), statusID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(cards), cards)
}

// Create appends a card to the requested status, or to the project's first
// status when none is given.
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if project == nil {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}

	if !requireProjectRole(c, h.projects, projectID, userID, model.RoleMember) {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a card title")
		return
	}

	var status *model.Status
	if req.StatusID == "" {
		status, err = h.statuses.GetFirst(c.Request.Context(), projectID)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if status == nil {
			respondError(c, http.StatusBadRequest, "Project has no statuses")
			return
		}
	} else {
		statusID, err := uuid.Parse(req.StatusID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid status ID format")
			return
		}
		status, err = h.statuses.GetByID(c.Request.Context(), statusID)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		if status == nil {
			respondError(c, http.StatusNotFound, "Status not found")
			return
		}
		if status.ProjectID != projectID {
			respondError(c, http.StatusBadRequest, "Status does not belong to this project")
			return
		}
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !priority.Valid() {
		respondError(c, http.StatusBadRequest, "Priority must be High, Medium or Low")
		return
	}

	card := &model.Card{
		ProjectID:   projectID,
		StatusID:    status.ID,
		Title:       req.Title,
		Description: req.Description,
		Reporter:    userID,
		Priority:    priority,
		DueDate:     req.DueDate,
		Estimate:    req.Estimate,
	}
	if req.AssignedTo != "" {
		assignee, err := uuid.Parse(req.AssignedTo)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid assignee ID format")
			return
		}
		card.AssignedTo = &assignee
	}

	if err := h.cards.Create(c.Request.Context(), card); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, projectID, &card.ID,
		model.ActionCreatedCard, model.ActivityDetails{CardTitle: card.Title, StatusName: status.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, card)
}

func (h *CardHandler) GetByID(c *gin.Context) {
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
	respondOK(c, card)
}

// Update edits card fields. Changing the status is a move: the card lands
// at the end of the destination column and the activity records both ends.
func (h *CardHandler) Update(c *gin.Context) {
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

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Title != "" {
		card.Title = req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Priority != "" {
		if !req.Priority.Valid() {
			respondError(c, http.StatusBadRequest, "Priority must be High, Medium or Low")
			return
		}
		card.Priority = req.Priority
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}
	if req.Estimate != nil {
		card.Estimate = req.Estimate
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == "" {
			card.AssignedTo = nil
		} else {
			assignee, err := uuid.Parse(*req.AssignedTo)
			if err != nil {
				respondError(c, http.StatusBadRequest, "Invalid assignee ID format")
				return
			}
			card.AssignedTo = &assignee
		}
	}

	var oldStatus, newStatus *model.Status
	moving := false
	if req.StatusID != "" {
		statusID, err := uuid.Parse(req.StatusID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid status ID format")
			return
		}
		if statusID != card.StatusID {
			newStatus, err = h.statuses.GetByID(c.Request.Context(), statusID)
			if err != nil {
				respondStoreError(c, err)
				return
			}
			if newStatus == nil {
				respondError(c, http.StatusNotFound, "Status not found")
				return
			}
			if newStatus.ProjectID != card.ProjectID {
				respondError(c, http.StatusBadRequest, "Status does not belong to this project")
				return
			}
			oldStatus, err = h.statuses.GetByID(c.Request.Context(), card.StatusID)
			if err != nil {
				respondStoreError(c, err)
				return
			}
			moving = true
		}
	}

	if moving {
		// Field edits and the move commit in one transaction: a failed
		// move must not leave an edited-but-unmoved card behind.
		if err := h.cards.Move(c.Request.Context(), card, newStatus.ID); err != nil {
			respondStoreError(c, err)
			return
		}

		details := model.ActivityDetails{
			CardTitle: card.Title,
			NewStatus: newStatus.Name,
		}
		if oldStatus != nil {
			details.OldStatus = oldStatus.Name
		}
		if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
			model.ActionMovedCard, details); err != nil {
			respondStoreError(c, err)
			return
		}
		respondOK(c, card)
		return
	}

	if err := h.cards.Update(c.Request.Context(), card); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
		model.ActionUpdatedCard, model.ActivityDetails{CardTitle: card.Title}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, card)
}

// Delete is allowed for project admins and for the card's reporter.
func (h *CardHandler) Delete(c *gin.Context) {
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

	if card.Reporter != userID {
		if !requireProjectRole(c, h.projects, card.ProjectID, userID, model.RoleAdmin) {
			return
		}
	} else if !requireProjectRole(c, h.projects, card.ProjectID, userID, model.RoleViewer) {
		return
	}

	if err := h.cards.Delete(c.Request.Context(), cardID); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, nil,
		model.ActionDeletedCard, model.ActivityDetails{CardTitle: card.Title}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}

// Reorder applies a full drag-and-drop ordering of one status's cards.
func (h *CardHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	statusID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	status, err := h.statuses.GetByID(c.Request.Context(), statusID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if status == nil {
		respondError(c, http.StatusNotFound, "Status not found")
		return
	}

	if !requireProjectRole(c, h.projects, status.ProjectID, userID, model.RoleMember) {
		return
	}

	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CardOrder == nil {
		respondError(c, http.StatusBadRequest, "Please provide a valid card order array")
		return
	}

	if err := h.cards.Reorder(c.Request.Context(), statusID, req.CardOrder); err != nil {
		if errors.Is(err, repository.ErrIncompleteOrder) {
			respondError(c, http.StatusBadRequest, "Card order must contain every card of the status exactly once")
			return
		}
		respondStoreError(c, err)
		return
	}

	cards, err := h.cards.GetByStatusID(c.Request.Context(), statusID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, status.ProjectID, nil,
		model.ActionReorderedCards, model.ActivityDetails{StatusName: status.Name, Order: req.CardOrder}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(cards), cards)
}

func (h *CardHandler) AddTag(c *gin.Context) {
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

	var req AddTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a tag ID")
		return
	}
	tagID, err := uuid.Parse(req.TagID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid tag ID format")
		return
	}

	tag, err := h.tags.GetByID(c.Request.Context(), tagID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if tag == nil {
		respondError(c, http.StatusNotFound, "Tag not found")
		return
	}
	if tag.ProjectID != card.ProjectID {
		respondError(c, http.StatusBadRequest, "Tag does not belong to this project")
		return
	}

	if err := h.cards.AddTag(c.Request.Context(), cardID, tagID); err != nil {
		if errors.Is(err, repository.ErrTagAlreadyOnCard) {
			respondError(c, http.StatusBadRequest, "Tag is already attached to this card")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
		model.ActionAddedTagToCard, model.ActivityDetails{CardTitle: card.Title, TagName: tag.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}

func (h *CardHandler) RemoveTag(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tagId")
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

	tag, err := h.tags.GetByID(c.Request.Context(), tagID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if tag == nil {
		respondError(c, http.StatusNotFound, "Tag not found")
		return
	}

	if err := h.cards.RemoveTag(c.Request.Context(), cardID, tagID); err != nil {
		if errors.Is(err, repository.ErrTagNotOnCard) {
			respondError(c, http.StatusBadRequest, "Tag is not attached to this card")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, card.ProjectID, &card.ID,
		model.ActionRemovedTagFromCard, model.ActivityDetails{CardTitle: card.Title, TagName: tag.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}
