// Package middleware provides gin middleware for authentication, role
// gating, request logging and CORS.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/sdk/jwt"
)

// Context keys set by Authenticate.
const (
	AccountIDKey = "account_id"
	IsTrainerKey = "is_trainer"
)

// Error codes written by the middleware. They mirror the entries in the
// app error taxonomy; the app package imports this package, so the
// constants live here to avoid an import cycle.
const (
	CodeMissingAuthHeader = "missing_authorization_header"
	CodeInvalidAuthHeader = "invalid_authorization_header"
	CodeInvalidToken      = "invalid_token"
	CodeExpiredToken      = "expired_token"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
)

const bearerPrefix = "Bearer "

var ErrMissingIdentity = errors.New("middleware: no account identity in context")

// Authenticate validates the bearer access token and stores the account
// identity in the request context.
func Authenticate(tokens *jwt.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": CodeMissingAuthHeader})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": CodeInvalidAuthHeader})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := tokens.ParseAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			code := CodeInvalidToken
			if errors.Is(err, jwt.ErrExpiredToken) {
				code = CodeExpiredToken
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": code})
			c.Abort()
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": CodeInvalidToken})
			c.Abort()
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Set(IsTrainerKey, claims.IsTrainer)

		c.Next()
	}
}

// GetAccountID extracts the authenticated account id from the context.
func GetAccountID(c *gin.Context) (int64, error) {
	val, exists := c.Get(AccountIDKey)
	if !exists {
		return 0, ErrMissingIdentity
	}

	accountID, ok := val.(int64)
	if !ok {
		return 0, ErrMissingIdentity
	}

	return accountID, nil
}
