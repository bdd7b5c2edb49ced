package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionContextKey is the gin context key holding the visitor session ID.
const SessionContextKey = "sessionID"

// SessionCookieName identifies the visitor across requests; the cart
// is keyed by its value.
const SessionCookieName = "shop_session"

const sessionCookieMaxAge = 7 * 24 * 60 * 60

// Session ensures every request carries a visitor session ID,
// minting a cookie on first contact.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the visitor session ID from the gin context.
func GetSessionID(c *gin.Context) (string, error) {
	if val, ok := c.Get(SessionContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("session ID not found in context")
}
