package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/logger"
	"github.com/princinho/stonevitrine/utils"
)

const basicAuthRealm = `Basic realm="Administration Sécurisée"`

// AdminPerimeter puts HTTP Basic auth in front of every path under prefix.
// It is independent from the session gate: a request under the prefix needs both.
// An empty prefix disables the perimeter.
func AdminPerimeter(prefix, user, pass string) gin.HandlerFunc {
	prefix = strings.TrimRight(prefix, "/")
	return func(c *gin.Context) {
		if prefix == "" || !underPrefix(c.Request.URL.Path, prefix) {
			c.Next()
			return
		}

		u, p, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", basicAuthRealm)
			utils.RespondError(c, &utils.AuthError{Status: http.StatusUnauthorized, Message: "authentication required"})
			return
		}
		if !equal(u, user) || !equal(p, pass) {
			logger.App().WithField("ip", c.ClientIP()).Warn("admin perimeter rejected credentials")
			utils.RespondError(c, &utils.AuthError{Status: http.StatusForbidden, Message: "access denied"})
			return
		}
		c.Next()
	}
}

func underPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
