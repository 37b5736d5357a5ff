package handler

import (
	"errors"
	"net/http"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tags       repository.TagRepositoryInterface
	projects   repository.ProjectRepositoryInterface
	activities repository.ActivityRepositoryInterface
}

func NewTagHandler(tags repository.TagRepositoryInterface, projects repository.ProjectRepositoryInterface, activities repository.ActivityRepositoryInterface) *TagHandler {
	return &TagHandler{
		tags:       tags,
		projects:   projects,
		activities: activities,
	}
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=50"`
	Color string `json:"color"`
}

type UpdateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (h *TagHandler) GetAll(c *gin.Context) {
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

	tags, err := h.tags.GetByProjectID(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(tags), tags)
}

func (h *TagHandler) Create(c *gin.Context) {
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

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a tag name")
		return
	}

	tag := &model.Tag{
		ProjectID: projectID,
		Name:      req.Name,
	}
	if req.Color != "" {
		tag.Color = req.Color
	}

	if err := h.tags.Create(c.Request.Context(), tag); err != nil {
		if errors.Is(err, repository.ErrTagExists) {
			respondError(c, http.StatusBadRequest, "Tag with this name already exists in the project")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, projectID, nil,
		model.ActionCreatedTag, model.ActivityDetails{TagName: tag.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "id")
	if !ok {
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

	if !requireProjectRole(c, h.projects, tag.ProjectID, userID, model.RoleAdmin) {
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name != "" {
		tag.Name = req.Name
	}
	if req.Color != "" {
		tag.Color = req.Color
	}

	if err := h.tags.Update(c.Request.Context(), tag); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, tag.ProjectID, nil,
		model.ActionUpdatedTag, model.ActivityDetails{TagName: tag.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, tag)
}

// Delete removes the tag and detaches it from every card in one step.
func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "id")
	if !ok {
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

	if !requireProjectRole(c, h.projects, tag.ProjectID, userID, model.RoleAdmin) {
		return
	}

	if err := h.tags.Delete(c.Request.Context(), tagID); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, tag.ProjectID, nil,
		model.ActionDeletedTag, model.ActivityDetails{TagName: tag.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}
