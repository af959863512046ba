package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// rootHandler reports that the service is up.
func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "SOLIDARITY Hospital front desk",
		"status":  "ok",
	})
}

// SetupRootRoute sets up routes for the application
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
}
