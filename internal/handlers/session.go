package handlers

import (
	"net/http"

	"commfeed/internal/middleware"
	"commfeed/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	feed *services.FeedService
}

func NewSessionHandler(feed *services.FeedService) *SessionHandler {
	return &SessionHandler{feed: feed}
}

// SwitchUser changes which user acts in this browser session.
func (h *SessionHandler) SwitchUser(c *gin.Context) {
	userID := c.PostForm("user_id")

	user, err := h.feed.FindUser(c.Request.Context(), userID)
	if err != nil {
		RenderError(c, errorStatus(err), errorMessage(err))
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save session")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
