package utils

import (
	"github.com/gin-gonic/gin"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "accessToken"

func SetAuthCookie(c *gin.Context, accessToken string) {
	c.SetCookie(AccessTokenCookie, accessToken, int(AccessTokenExpiry.Seconds()), "/", "", secureCookies(), true)
}

func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secureCookies(), true)
}

// Plain HTTP is allowed for local development.
func secureCookies() bool {
	return gin.Mode() != gin.DebugMode
}
