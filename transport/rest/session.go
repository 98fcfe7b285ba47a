package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "checkers_session"
	sessionTTL    = 30 * 24 * time.Hour

	identityKey = "identity"
)

// sessionMiddleware - every caller gets a stable opaque identity kept in a cookie.
func sessionMiddleware(logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("method", "session")

	return func(c *gin.Context) {
		identity, err := c.Cookie(sessionCookie)
		if err != nil || !isIdentity(identity) {
			identity = uuid.NewString()

			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, identity, int(sessionTTL.Seconds()), "/", "", false, true)

			log.Debug("session cookie not found, new one created", "identity", identity)
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func isIdentity(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

func identityFrom(c *gin.Context) string {
	return c.GetString(identityKey)
}

// requestLogger - one line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Debug("http",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"dur", time.Since(start).Round(time.Microsecond),
		)
	}
}
