package handler

import (
	"net/http"
	"strconv"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activities repository.ActivityRepositoryInterface
	cards      repository.CardRepositoryInterface
	projects   repository.ProjectRepositoryInterface
}

func NewActivityHandler(activities repository.ActivityRepositoryInterface, cards repository.CardRepositoryInterface, projects repository.ProjectRepositoryInterface) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		cards:      cards,
		projects:   projects,
	}
}

func (h *ActivityHandler) GetByProject(c *gin.Context) {
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

	page, limit := pagination(c)
	activities, total, err := h.activities.ListByProject(c.Request.Context(), projectID, page, limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondPage(c, activities, len(activities), total, page, limit)
}

func (h *ActivityHandler) GetByCard(c *gin.Context) {
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

	page, limit := pagination(c)
	activities, total, err := h.activities.ListByCard(c.Request.Context(), cardID, page, limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondPage(c, activities, len(activities), total, page, limit)
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func respondPage(c *gin.Context, data interface{}, count int, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"total":   total,
		"page":    page,
		"limit":   limit,
		"data":    data,
	})
}
