package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDKey is the gin context key the resolved user id is stored under.
const UserIDKey = "user_id"

// defaultUserID backs single-user and demo deployments that send no header.
var defaultUserID = uuid.MustParse("00000000-0000-0000-0000-000000000000")

// ResolveUser reads the acting user from the X-User-ID header. There is no
// authentication layer; the header is trusted as-is and absent headers fall
// back to the demo user.
func ResolveUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.Set(UserIDKey, defaultUserID)
			c.Next()
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid X-User-ID header"})
			c.Abort()
			return
		}
		c.Set(UserIDKey, id)
		c.Next()
	}
}

// UserID returns the resolved user id from the context.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return defaultUserID
}
