package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"commfeed/internal/middleware"
	"commfeed/internal/models"
	"commfeed/internal/services"
	"commfeed/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FeedHandler struct {
	feed   *services.FeedService
	cache  *utils.RenderCache
	logger *zap.Logger
}

func NewFeedHandler(feed *services.FeedService, cache *utils.RenderCache, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, cache: cache, logger: logger}
}

// FlatComment is a comment prepared for the detail view.
type FlatComment struct {
	models.Comment
	ContentHTML template.HTML
	Floor       int
}

// List shows the whole feed. Shared links arrive as /?post=<id> and are sent to the post.
func (h *FeedHandler) List(c *gin.Context) {
	if postID := c.Query("post"); postID != "" {
		c.Redirect(http.StatusFound, "/p/"+postID)
		return
	}

	order := services.OrderNew
	title := "Latest"
	if c.Query("order") == string(services.OrderTop) {
		order = services.OrderTop
		title = "Top"
	}

	h.renderList(c, http.StatusOK, services.ListOptions{Order: order}, gin.H{
		"Active": string(order),
		"Title":  title,
	})
}

// ListByCommunity shows the posts of one community.
func (h *FeedHandler) ListByCommunity(c *gin.Context) {
	name := c.Param("name")

	communities, err := h.feed.ListCommunities(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	var community *models.Community
	for i := range communities {
		if communities[i].Name == name {
			community = &communities[i]
		}
	}
	if community == nil {
		RenderError(c, http.StatusNotFound, "Community not found")
		return
	}

	h.renderList(c, http.StatusOK, services.ListOptions{Order: services.OrderNew, Community: name}, gin.H{
		"Active":    "community",
		"Title":     community.Name,
		"Community": community,
	})
}

func (h *FeedHandler) renderList(c *gin.Context, code int, opts services.ListOptions, data gin.H) {
	ctx := c.Request.Context()

	posts, err := h.feed.ListPosts(ctx, opts)
	if err != nil {
		h.fail(c, err)
		return
	}
	communities, err := h.feed.ListCommunities(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	data["Posts"] = posts
	data["Communities"] = communities
	data["CurrentCommunity"] = opts.Community
	Render(c, code, "feed/list.html", data)
}

// Detail shows one post with its comments.
func (h *FeedHandler) Detail(c *gin.Context) {
	postID := c.Param("id")

	post, revision, err := h.feed.GetPostRevision(c.Request.Context(), postID)
	if err != nil {
		h.fail(c, err)
		return
	}

	cacheKey := detailCacheKey(postID)
	if cachedData, ok := h.cache.Lookup(cacheKey, revision); ok {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "feed/detail.html", hData)
			return
		}
	}

	flatComments := make([]FlatComment, len(post.Comments))
	for i, com := range post.Comments {
		flatComments[i] = FlatComment{
			Comment:     com,
			ContentHTML: utils.RenderMarkdown(com.Content),
			Floor:       i + 1,
		}
	}

	renderData := gin.H{
		"Post":     post,
		"Comments": flatComments,
		"Title":    fmt.Sprintf("%s in %s", post.Author.Name, post.Community),
	}
	h.cache.Put(cacheKey, revision, renderData)

	Render(c, http.StatusOK, "feed/detail.html", renderData)
}

// Create publishes a post from the composer form.
func (h *FeedHandler) Create(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var in services.PostInput
	if err := c.ShouldBind(&in); err != nil {
		RenderError(c, http.StatusBadRequest, "Invalid form")
		return
	}

	post, err := h.feed.CreatePost(c.Request.Context(), *user, in)
	if err != nil {
		if errorStatus(err) == http.StatusBadRequest {
			h.renderList(c, http.StatusBadRequest, services.ListOptions{Order: services.OrderNew}, gin.H{
				"Active": string(services.OrderNew),
				"Title":  "Latest",
				"Error":  errorMessage(err),
			})
			return
		}
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/p/"+post.ID)
}

// React adds a reaction and answers with the new count for HTMX to swap in.
func (h *FeedHandler) React(c *gin.Context) {
	postID := c.Param("id")

	post, err := h.feed.AddReaction(c.Request.Context(), postID)
	if err != nil {
		c.String(errorStatus(err), "%s", errorMessage(err))
		return
	}
	c.String(http.StatusOK, "%d", post.Reactions)
}

// CreateComment appends a comment and returns to the post.
func (h *FeedHandler) CreateComment(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	postID := c.Param("id")

	_, err := h.feed.AddComment(c.Request.Context(), postID, *user, c.PostForm("content"))
	if err != nil && errorStatus(err) != http.StatusBadRequest {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/p/"+postID+"#comments")
}

func (h *FeedHandler) fail(c *gin.Context, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("Feed request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	RenderError(c, code, errorMessage(err))
}
