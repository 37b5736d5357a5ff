package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/meeladheeraj/todolist-Apis/internal/auth"
	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users repository.UserRepositoryInterface
}

func NewAuthHandler(users repository.UserRepositoryInterface) *AuthHandler {
	return &AuthHandler{users: users}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a valid username, email and password")
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if existing == nil {
		existing, err = h.users.FindByUsername(c.Request.Context(), req.Username)
		if err != nil {
			respondStoreError(c, err)
			return
		}
	}
	if existing != nil {
		respondError(c, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hash),
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondStoreError(c, err)
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, resp)
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	userIDStr, err := auth.ParseToken(req.RefreshToken)
	if err != nil {
		respondError(c, http.StatusForbidden, "Invalid refresh token")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		respondError(c, http.StatusForbidden, "Invalid refresh token")
		return
	}

	// The token must also be the one currently stored for the user, so a
	// rotated-out or logged-out token cannot be replayed.
	user, err := h.users.FindByRefreshToken(c.Request.Context(), userID, req.RefreshToken)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusForbidden, "Invalid refresh token")
		return
	}

	resp, err := h.issueTokens(c, user)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{
		"access_token":  resp.AccessToken,
		"refresh_token": resp.RefreshToken,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	if err := h.users.ClearRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	respondOK(c, user)
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide an email address")
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	// Never reveal whether the account exists.
	if user == nil {
		respondOK(c, gin.H{"message": "If a user with that email exists, a reset token has been sent"})
		return
	}

	token, hash, err := auth.GenerateResetToken()
	if err != nil {
		respondStoreError(c, err)
		return
	}

	expires := time.Now().Add(30 * time.Minute)
	user.ResetPasswordToken = &hash
	user.ResetPasswordExpires = &expires
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		respondStoreError(c, err)
		return
	}

	// Without a mail collaborator the token goes back to the caller, as the
	// reference deployment does in development mode.
	respondOK(c, gin.H{
		"message": "Password reset token generated",
		"token":   token,
	})
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide a new password of at least 6 characters")
		return
	}

	user, err := h.users.FindByResetToken(c.Request.Context(), auth.HashResetToken(c.Param("token")))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if user == nil {
		respondError(c, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	user.HashedPassword = string(hash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	user.RefreshToken = nil
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		respondStoreError(c, err)
		return
	}
	respondOK(c, gin.H{"message": "Password has been reset"})
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *model.User) (*AuthResponse, error) {
	accessToken, err := auth.GenerateAccessToken(user.ID.String())
	if err != nil {
		return nil, err
	}
	refreshToken, err := auth.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	user.RefreshToken = &refreshToken
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
