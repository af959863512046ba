package handlers

import (
	"SolidarityHospital/middlewares"
	"SolidarityHospital/models"
	"SolidarityHospital/services"
	"SolidarityHospital/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles new user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegistrationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SetAuthCookie(c, result.AccessToken)
	c.JSON(http.StatusCreated, result)
}

// Login authenticates the user and returns the session, token and landing page.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SetAuthCookie(c, result.AccessToken)
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Logoff(c *gin.Context) {
	username, _ := middlewares.ExtractUsernameFromContext(c.Request.Context())
	redirect, err := h.service.Logout(c.Request.Context(), username)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": redirect})
}

// Me returns the token identity together with the caller's own session.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	username, _ := middlewares.ExtractUsernameFromContext(ctx)
	role, _ := middlewares.ExtractUserRoleFromContext(ctx)

	session, err := h.service.Current(ctx, username)
	if err != nil && !errors.Is(err, services.ErrNotAuthenticated) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "role": role, "session": session})
}

func (h *AuthHandler) SendResetCode(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.SendResetCode(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a reset code has been sent"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email"`
		ResetCode   string `json:"resetCode"`
		NewPassword string `json:"newPassword"`
	}
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), req.Email, req.ResetCode, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}
