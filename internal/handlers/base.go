package handlers

import (
	"errors"
	"net/http"

	"commfeed/internal/db"
	"commfeed/internal/middleware"
	"commfeed/internal/services"

	"github.com/gin-gonic/gin"
)

// Render injects the acting user and common view variables, then renders the named template.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := gin.H{}
	for k, v := range obj {
		data[k] = v
	}

	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	if _, ok := data["Active"]; !ok {
		data["Active"] = ""
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// RenderError renders the error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Title": http.StatusText(code)})
}

// errorStatus maps feed errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrPostNotFound), errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the user-facing text for err. Internal failures are not spelled out.
func errorMessage(err error) string {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, services.ErrPostNotFound):
		return "Post not found"
	case errors.Is(err, services.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, db.ErrConflict):
		return "The feed changed while saving, please retry"
	default:
		return "Something went wrong"
	}
}

func detailCacheKey(postID string) string {
	return "feed:detail:" + postID
}
