package controllers

import (
	"SolidarityHospital/handlers"
	"SolidarityHospital/middlewares"
	"SolidarityHospital/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
	tokens  *utils.TokenIssuer
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler, tokens *utils.TokenIssuer) *AuthController {
	return &AuthController{
		Handler: authHandler,
		tokens:  tokens,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	router.POST("/auth/register", ac.Handler.Register)
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/send-reset-code", ac.Handler.SendResetCode)
	router.POST("/auth/change-password", ac.Handler.ChangePassword)

	// Protected routes: Requires a valid token
	authGroup := router.Group("/auth").Use(middlewares.TokenAuthMiddleware(ac.tokens))
	{
		authGroup.POST("/logoff", ac.Handler.Logoff)
		authGroup.GET("/me", ac.Handler.Me)
	}
}
