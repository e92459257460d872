package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKey gates write routes behind the shared admin secret. The expected
// key comes from configuration, not the environment, so tests and callers
// wire it explicitly. The check runs before any body parsing.
func AdminKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Admin-Key")

		if expected == "" || key == "" || key != expected {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Next()
	}
}
