package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/meeladheeraj/todolist-Apis/internal/middleware"
	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Every response carries the same envelope: a success flag plus either a
// data payload or an error message.

func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func respondError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "error": msg})
}

// respondStoreError classifies a failed store call. Deadline and
// cancellation errors are transient and worth retrying; anything else is
// unexpected, logged for operators and returned without internal detail.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		respondError(c, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry")
		return
	}
	log.Printf("store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// currentUserID pulls the authenticated user id set by the auth middleware.
// It writes the 401 itself when the middleware never ran.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return userID, true
}

// requireProjectRole resolves the caller's role in the project and rejects
// the request unless it meets the required rank. Fail-closed: no membership
// means forbidden. The project itself must already have been loaded by the
// caller (missing entities are 404s before any role is evaluated).
func requireProjectRole(c *gin.Context, projects repository.ProjectRepositoryInterface, projectID, userID uuid.UUID, required model.Role) bool {
	role, err := projects.RoleOf(c.Request.Context(), projectID, userID)
	if err != nil {
		respondStoreError(c, err)
		return false
	}
	if role == "" {
		respondError(c, http.StatusForbidden, "Not authorized to access this project")
		return false
	}
	if !role.AtLeast(required) {
		respondError(c, http.StatusForbidden, "Insufficient role for this operation")
		return false
	}
	return true
}

// parseIDParam parses a uuid path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
