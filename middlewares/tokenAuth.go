package middlewares

import (
	"SolidarityHospital/utils"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ContextKey defines a custom context key type to store user details in the context.
type contextKey string

const (
	usernameKey contextKey = "username"
	userRoleKey contextKey = "userRole"
)

var errMissingToken = errors.New("missing access token")

// accessToken reads the token from the Authorization header and falls back to the
// access token cookie.
func accessToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", errors.New("invalid Authorization header format")
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}
	if cookie, err := c.Cookie(utils.AccessTokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errMissingToken
}

// TokenAuthMiddleware validates the access token and adds user details to the request context.
func TokenAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := accessToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			log.Debug().Err(err).Str("path", c.FullPath()).Msg("Token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), usernameKey, claims.Username)
		ctx = context.WithValue(ctx, userRoleKey, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleAuthMiddleware restricts access to users with one of the given roles.
func RoleAuthMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := ExtractUserRoleFromContext(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User role not found in context"})
			return
		}

		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient privileges"})
	}
}

// ExtractUsernameFromContext retrieves the username from the context.
func ExtractUsernameFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok {
		return "", errors.New("username not found in context")
	}
	return username, nil
}

// ExtractUserRoleFromContext retrieves the user role from the context.
func ExtractUserRoleFromContext(ctx context.Context) (string, error) {
	userRole, ok := ctx.Value(userRoleKey).(string)
	if !ok {
		return "", errors.New("user role not found in context")
	}
	return userRole, nil
}
