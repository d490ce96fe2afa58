package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msc-labs/evaluate-backend/internal/middleware"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/response"
	"github.com/msc-labs/evaluate-backend/internal/service"
	"github.com/msc-labs/evaluate-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// POST /api/v1/auth/register
// Creates a student or tutor account. Admin accounts come from the CLI only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.MsgValidation, gin.H{"fields": fields})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, response.MsgEmailTaken)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusCreated, user)
}

// Login godoc
// POST /api/v1/auth/login
// Validates email + password and returns a JWT plus the user profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.MsgValidation, gin.H{"fields": fields})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, response.MsgInvalidCredentials)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, model.LoginResponse{Token: token, User: *user})
}

// Logout godoc
// POST /api/v1/auth/logout
// Invalidates the caller's active session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Error(c, http.StatusUnauthorized, response.MsgNoToken)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims.UserID); err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the identity embedded in the caller's token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Error(c, http.StatusUnauthorized, response.MsgNoToken)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
	})
}
