package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates gateway requests with a shared-secret Bearer token or X-API-Key header.
// Whitelisted paths and their sub-paths pass without credentials.
func AuthMiddleware(enabled bool, secret string, whitelist []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled || whitelisted(c.Request.URL.Path, whitelist) {
			c.Next()
			return
		}

		// A present Authorization header is authoritative, X-API-Key is not consulted.
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			scheme, token, ok := strings.Cut(authHeader, " ")
			if ok && scheme == "Bearer" && secretMatches(token, secret) {
				c.Next()
				return
			}
			abortUnauthorized(c)
			return
		}

		if apiKey := c.GetHeader("X-API-Key"); apiKey != "" && secretMatches(apiKey, secret) {
			c.Next()
			return
		}

		abortUnauthorized(c)
	}
}

func whitelisted(path string, whitelist []string) bool {
	for _, p := range whitelist {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

// secretMatches compares in constant time.
func secretMatches(got, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(secret)) == 1
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "authentication failed",
		"code":  http.StatusUnauthorized,
	})
}
