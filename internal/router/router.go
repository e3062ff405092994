package router

import (
	"net/http"
	"time"

	"commfeed/internal/config"
	"commfeed/internal/handlers"
	"commfeed/internal/middleware"
	"commfeed/internal/services"
	"commfeed/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps is what the HTTP layer needs from the rest of the program.
type Deps struct {
	Config       config.Config
	Feed         *services.FeedService
	Logger       *zap.Logger
	TemplatesDir string
}

// New builds the gin engine with middleware, templates and every route.
func New(deps Deps) (*gin.Engine, error) {
	cache, err := utils.NewRenderCache(500, 5*time.Minute)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Logger))

	store := cookie.NewStore([]byte(deps.Config.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("commfeed_session", store))

	r.HTMLRender = LoadTemplates(deps.TemplatesDir)

	r.Use(middleware.LoadUser(deps.Feed, deps.Config.DefaultUserID))

	RegisterRoutes(r, deps, cache)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, deps Deps, cache *utils.RenderCache) {
	feedHandler := handlers.NewFeedHandler(deps.Feed, cache, deps.Logger)
	communityHandler := handlers.NewCommunityHandler(deps.Feed, deps.Logger)
	sessionHandler := handlers.NewSessionHandler(deps.Feed)
	apiHandler := handlers.NewAPIHandler(deps.Feed, deps.Config.SiteURL, deps.Logger)

	// Public pages
	r.GET("/", feedHandler.List)                      // feed, ?order=top, ?post=<id> from shared links
	r.GET("/c/:name", feedHandler.ListByCommunity)    // one community's posts
	r.GET("/p/:id", feedHandler.Detail)               // post with comments
	r.GET("/communities", communityHandler.ListCommunities)
	r.POST("/session/user", sessionHandler.SwitchUser) // choose the acting user

	// Mutations need an acting user
	acting := r.Group("/")
	acting.Use(middleware.UserRequired())
	{
		acting.POST("/submit", feedHandler.Create)
		acting.POST("/p/:id/react", feedHandler.React)
		acting.POST("/p/:id/comment", feedHandler.CreateComment)
	}

	api := r.Group("/api")
	if origins := deps.Config.CORSOrigins; len(origins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type"},
		}))
	}
	{
		api.GET("/posts", apiHandler.ListPosts)
		api.GET("/posts/:id", apiHandler.GetPost)
		api.GET("/posts/:id/share", apiHandler.SharePost)
		api.GET("/communities", apiHandler.ListCommunities)
		api.GET("/users", apiHandler.ListUsers)

		apiActing := api.Group("")
		apiActing.Use(middleware.UserRequired())
		apiActing.POST("/posts", apiHandler.CreatePost)
		apiActing.POST("/posts/:id/reactions", apiHandler.AddReaction)
		apiActing.POST("/posts/:id/comments", apiHandler.AddComment)
	}
}
