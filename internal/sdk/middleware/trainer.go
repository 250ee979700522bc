package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Trainer rejects requests from accounts that are not trainers.
// Must run after Authenticate.
func Trainer() gin.HandlerFunc {
	return func(c *gin.Context) {
		isTrainerVal, exists := c.Get(IsTrainerKey)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": CodeUnauthorized})
			c.Abort()
			return
		}

		isTrainer, ok := isTrainerVal.(bool)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": CodeUnauthorized})
			c.Abort()
			return
		}

		if !isTrainer {
			c.JSON(http.StatusForbidden, gin.H{"error": CodeForbidden})
			c.Abort()
			return
		}

		c.Next()
	}
}
