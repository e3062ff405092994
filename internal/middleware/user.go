package middleware

import (
	"context"
	"errors"
	"net/http"

	"commfeed/internal/models"
	"commfeed/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CurrentUserKey = "user"
	SessionUserKey = "user_id"
)

// UserFinder resolves user ids against the feed document.
type UserFinder interface {
	FindUser(ctx context.Context, userID string) (*models.User, error)
}

// LoadUser puts the acting user into the context: the user chosen in the session, or
// defaultUserID when the session has none or names a user that no longer exists.
// This selects an identity; it does not authenticate anyone.
func LoadUser(users UserFinder, defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, _ := session.Get(SessionUserKey).(string)
		if userID == "" {
			userID = defaultUserID
		}

		user, err := users.FindUser(c.Request.Context(), userID)
		if errors.Is(err, services.ErrUserNotFound) && userID != defaultUserID {
			user, err = users.FindUser(c.Request.Context(), defaultUserID)
		}
		if err != nil {
			_ = c.Error(err)
		} else {
			c.Set(CurrentUserKey, user)
		}
		c.Next()
	}
}

// UserRequired rejects requests without an acting user.
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CurrentUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no acting user"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the acting user set by LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
