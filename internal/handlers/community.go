package handlers

import (
	"net/http"

	"commfeed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommunityHandler struct {
	feed   *services.FeedService
	logger *zap.Logger
}

func NewCommunityHandler(feed *services.FeedService, logger *zap.Logger) *CommunityHandler {
	return &CommunityHandler{feed: feed, logger: logger}
}

// ListCommunities shows every community.
func (h *CommunityHandler) ListCommunities(c *gin.Context) {
	communities, err := h.feed.ListCommunities(c.Request.Context())
	if err != nil {
		h.logger.Error("List communities failed", zap.Error(err))
		RenderError(c, errorStatus(err), errorMessage(err))
		return
	}

	Render(c, http.StatusOK, "community/list.html", gin.H{
		"Communities": communities,
		"Title":       "Communities",
		"Active":      "communities",
	})
}
