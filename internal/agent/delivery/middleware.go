package delivery

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth guards the agent endpoints with a single static token.
// Requests are rejected here, before any upstream AI call can happen.
func BearerAuth(expectedToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedToken == "" {
			c.JSON(http.StatusInternalServerError, gin.H{
				"suggestions": []string{},
				"error":       "AGENT_BEARER_TOKEN is not configured",
			})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"suggestions": []string{},
				"error":       "authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"suggestions": []string{},
				"error":       "invalid authorization header format",
			})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(expectedToken)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"suggestions": []string{},
				"error":       "invalid token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
