package handler

import (
	"net/http"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projects   repository.ProjectRepositoryInterface
	users      repository.UserRepositoryInterface
	activities repository.ActivityRepositoryInterface
}

func NewProjectHandler(projects repository.ProjectRepositoryInterface, users repository.UserRepositoryInterface, activities repository.ActivityRepositoryInterface) *ProjectHandler {
	return &ProjectHandler{
		projects:   projects,
		users:      users,
		activities: activities,
	}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AddMemberRequest struct {
	UserID string     `json:"user_id" binding:"required"`
	Role   model.Role `json:"role"`
}

func (h *ProjectHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := h.projects.GetForUser(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondList(c, len(projects), projects)
}

// Create provisions the project together with its creator's admin
// membership and the three default statuses; the repository does all of it
// in one transaction.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a project name")
		return
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   userID,
	}
	if err := h.projects.CreateWithDefaults(c.Request.Context(), project); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, project.ID, nil,
		model.ActionCreatedProject, model.ActivityDetails{ProjectName: project.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, project)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
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

	members, err := h.projects.GetMembers(c.Request.Context(), projectID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	project.Members = members
	respondOK(c, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
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

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request")
		return
	}
	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, project.ID, nil,
		model.ActionUpdatedProject, model.ActivityDetails{ProjectName: project.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, project)
}

// Delete is allowed for project admins and for the creator, even if the
// creator somehow lost the admin role.
func (h *ProjectHandler) Delete(c *gin.Context) {
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

	if project.CreatedBy != userID {
		if !requireProjectRole(c, h.projects, projectID, userID, model.RoleAdmin) {
			return
		}
	}

	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		respondStoreError(c, err)
		return
	}

	// The audit trail outlives the project; the record lands after the
	// delete commits.
	if err := h.activities.Record(c.Request.Context(), userID, projectID, nil,
		model.ActionDeletedProject, model.ActivityDetails{ProjectName: project.Name}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}

func (h *ProjectHandler) AddMember(c *gin.Context) {
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

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a user ID")
		return
	}
	memberID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}
	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !role.Valid() {
		respondError(c, http.StatusBadRequest, "Role must be admin, member or viewer")
		return
	}

	member, err := h.users.GetByID(c.Request.Context(), memberID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if member == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := h.projects.AddMember(c.Request.Context(), projectID, memberID, role); err != nil {
		if err == repository.ErrMemberExists {
			respondError(c, http.StatusBadRequest, "User is already a member of this project")
			return
		}
		respondStoreError(c, err)
		return
	}

	if err := h.activities.Record(c.Request.Context(), userID, projectID, nil,
		model.ActionAddedMember, model.ActivityDetails{Username: member.Username, Role: role}); err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, gin.H{"user_id": memberID, "role": role})
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "userId")
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

	// The creator's membership is permanent, no matter who asks.
	if memberID == project.CreatedBy {
		respondError(c, http.StatusBadRequest, "Cannot remove the project creator")
		return
	}

	member, err := h.users.GetByID(c.Request.Context(), memberID)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	if err := h.projects.RemoveMember(c.Request.Context(), projectID, memberID); err != nil {
		if err == repository.ErrMemberNotFound {
			respondError(c, http.StatusNotFound, "User is not a member of this project")
			return
		}
		respondStoreError(c, err)
		return
	}

	details := model.ActivityDetails{}
	if member != nil {
		details.Username = member.Username
	}
	if err := h.activities.Record(c.Request.Context(), userID, projectID, nil,
		model.ActionRemovedMember, details); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{})
}
