package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ValidateAPIKey guards the admin back office. The key is resolved at
// route-setup time; an unset key aborts startup rather than letting empty
// headers through.
func ValidateAPIKey() gin.HandlerFunc {
	key := os.Getenv("ADMIN_API_KEY")
	if key == "" {
		panic("ADMIN_API_KEY is not set")
	}
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-KEY")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			c.Abort()
			return
		}
		c.Next()
	}
}
