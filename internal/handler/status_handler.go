package handler

import (
	"errors"
	"net/http"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StatusHandler struct {
	statuses   repository.StatusRepositoryInterface
	projects   repository.ProjectRepositoryInterface
	activities repository.ActivityRepositoryInterface
}

func NewStatusHandler(statuses repository.StatusRepositoryInterface, projects repository.ProjectRepositoryInterface, activities repository.ActivityRepositoryInterface) *StatusHandler {
	return &StatusHandler{
		statuses:   statuses,
		projects:   projects,
		activities: activities,
	}
}

type CreateStatusRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateStatusRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// StatusOrder carries no "required" binding: an empty project legitimately
// reorders with an empty array, which gin's required tag would reject.
type ReorderStatusesRequest struct {
	StatusOrder []uuid.UUID `json:"status_order"`
}

func (h *StatusHandler) GetAll(c *gin.Context) {
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

	statuses, err := h.statuses.GetByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(statuses), statuses)
}

func (h *StatusHandler) GetByID(c *gin.Context) {
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
	respondOK(c, status)
}

func (h *StatusHandler) Create(c *gin.Context) {
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

	if !requireProjectRole(c, h.projects, projectID, userID, model.RoleAdmin) {
		return
	}

	var req CreateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a status name")
		return
	}

	status := &model.Status{
		ProjectID:   projectID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	// Position is assigned by the repository: end of the project's order.
	if err := h.statuses.Create(c.Request.Context(), status); err != nil {
		if errors.Is(err, repository.ErrStatusExists) {
			respondError(c, http.StatusBadRequest, "Status with this name already exists in the project")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, projectID, nil,
		model.ActionCreatedStatus, model.ActivityDetails{StatusName: status.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, status)
}

func (h *StatusHandler) Update(c *gin.Context) {
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

	if !requireProjectRole(c, h.projects, status.ProjectID, userID, model.RoleAdmin) {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name != "" {
		status.Name = req.Name
	}
	if req.Description != "" {
		status.Description = req.Description
	}
	if req.Color != "" {
		status.Color = req.Color
	}
	// Position is deliberately not updatable here; reorder owns it.

	if err := h.statuses.Update(c.Request.Context(), status); err != nil {
		if errors.Is(err, repository.ErrStatusExists) {
			respondError(c, http.StatusBadRequest, "Status with this name already exists in the project")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, status.ProjectID, nil,
		model.ActionUpdatedStatus, model.ActivityDetails{StatusName: status.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, status)
}

func (h *StatusHandler) Delete(c *gin.Context) {
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

	if !requireProjectRole(c, h.projects, status.ProjectID, userID, model.RoleAdmin) {
		return
	}

	if err := h.statuses.Delete(c.Request.Context(), statusID); err != nil {
		if errors.Is(err, repository.ErrLastStatus) {
			respondError(c, http.StatusBadRequest, "Cannot delete the last status of a project")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, status.ProjectID, nil,
		model.ActionDeletedStatus, model.ActivityDetails{StatusName: status.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}

// Reorder applies a full drag-and-drop ordering of the project's statuses.
// The list must name every status of the project exactly once.
func (h *StatusHandler) Reorder(c *gin.Context) {
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

	if !requireProjectRole(c, h.projects, projectID, userID, model.RoleAdmin) {
		return
	}

	var req ReorderStatusesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StatusOrder == nil {
		respondError(c, http.StatusBadRequest, "Please provide a valid status order array")
		return
	}

	if err := h.statuses.Reorder(c.Request.Context(), projectID, req.StatusOrder); err != nil {
		if errors.Is(err, repository.ErrIncompleteOrder) {
			respondError(c, http.StatusBadRequest, "Status order must contain every status of the project exactly once")
			return
		}
		respondStoreError(c, err)
		return
	}

	statuses, err := h.statuses.GetByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, projectID, nil,
		model.ActionReorderedStatuses, model.ActivityDetails{Order: req.StatusOrder}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(statuses), statuses)
}
