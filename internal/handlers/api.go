package handlers

import (
	"net/http"

	"commfeed/internal/middleware"
	"commfeed/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves the JSON API under /api.
type APIHandler struct {
	feed    *services.FeedService
	siteURL string
	logger  *zap.Logger
}

func NewAPIHandler(feed *services.FeedService, siteURL string, logger *zap.Logger) *APIHandler {
	return &APIHandler{feed: feed, siteURL: siteURL, logger: logger}
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h *APIHandler) ListPosts(c *gin.Context) {
	opts := services.ListOptions{
		Order:     services.OrderNew,
		Community: c.Query("community"),
	}
	if c.Query("order") == string(services.OrderTop) {
		opts.Order = services.OrderTop
	}

	posts, err := h.feed.ListPosts(c.Request.Context(), opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *APIHandler) GetPost(c *gin.Context) {
	post, err := h.feed.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *APIHandler) CreatePost(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.feed.CreatePost(c.Request.Context(), *user, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *APIHandler) AddReaction(c *gin.Context) {
	postID := c.Param("id")

	post, err := h.feed.AddReaction(c.Request.Context(), postID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *APIHandler) AddComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	postID := c.Param("id")

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.feed.AddComment(c.Request.Context(), postID, *user, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *APIHandler) SharePost(c *gin.Context) {
	link, err := h.feed.SharePost(c.Request.Context(), h.siteURL+"/", c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *APIHandler) ListCommunities(c *gin.Context) {
	communities, err := h.feed.ListCommunities(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"communities": communities})
}

func (h *APIHandler) ListUsers(c *gin.Context) {
	users, err := h.feed.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *APIHandler) fail(c *gin.Context, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("API request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(code, gin.H{"error": errorMessage(err)})
}
