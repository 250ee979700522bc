package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/sdk/jwt"
	"github.com/fitcoach/coaching-service/internal/sdk/sqldb"
	"github.com/fitcoach/coaching-service/internal/services/hash"
	"github.com/fitcoach/coaching-service/internal/services/sentry"
)

type App struct {
	db     sqldb.Service
	hash   *hash.HashService
	jwt    *jwt.TokenService
	sentry *sentry.SentryService
}

func NewApp(
	db sqldb.Service,
	hash *hash.HashService,
	jwt *jwt.TokenService,
	sentry *sentry.SentryService,
) *App {
	return &App{
		db:     db,
		hash:   hash,
		jwt:    jwt,
		sentry: sentry,
	}
}

func (a *App) toSentry(c *gin.Context, handler, errType string, level sentry.Level, err error) {
	a.sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", handler)
		scope.SetExtra("error_type", errType)
		scope.SetLevel(level)
		if reqID := c.GetHeader("X-Request-ID"); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		a.sentry.CaptureException(err)
	})
}
