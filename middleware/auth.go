package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/utils"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
)

// AuthMiddleware gates a route on a valid session token, read from the
// session cookie or from an Authorization: Bearer header.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := sessionToken(c)
		if tokenStr == "" {
			utils.RespondError(c, utils.ErrNotAuthenticated)
			return
		}

		claims, err := utils.ValidateToken(tokenStr, secret)
		if err != nil {
			utils.RespondError(c, utils.ErrInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid session is presented and lets
// anonymous requests through untouched.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenStr := sessionToken(c); tokenStr != "" {
			if claims, err := utils.ValidateToken(tokenStr, secret); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// Authenticated reports whether an earlier middleware accepted a session.
func Authenticated(c *gin.Context) bool {
	return c.GetString(ContextUserID) != ""
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(utils.SessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
