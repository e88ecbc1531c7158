package middleware

import (
	"net/http"

	"bakery-cart-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const visitorIDKey = "visitor_id"

type SessionOptions struct {
	CookieName string
	MaxAgeDays int
	Secure     bool
}

// VisitorSession gives every browser a stable cart identity through a
// long-lived cookie. Values that are not UUIDs are replaced.
func VisitorSession(opts SessionOptions, log *logger.Logger) gin.HandlerFunc {
	maxAge := opts.MaxAgeDays * 24 * 60 * 60
	return func(c *gin.Context) {
		visitorID, err := c.Cookie(opts.CookieName)
		if err != nil || uuid.Validate(visitorID) != nil {
			visitorID = uuid.NewString()
		}

		// Refresh on every request so an active cart never expires.
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, visitorID, maxAge, "/", "", opts.Secure, true)

		c.Set(visitorIDKey, visitorID)
		c.Request = c.Request.WithContext(log.WithVisitorID(c.Request.Context(), visitorID))
		c.Next()
	}
}

// VisitorID returns the id set by VisitorSession, or "" outside it.
func VisitorID(c *gin.Context) string {
	return c.GetString(visitorIDKey)
}
