package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"commfeed/internal/config"
	"commfeed/internal/db"
	"commfeed/internal/models"
	"commfeed/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newTestRouterWithStore(t)
	return r
}

// newTestRouterWithStore also returns the store so tests can write to it the way a
// second process would.
func newTestRouterWithStore(t *testing.T) (*gin.Engine, *db.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store, closeDB, err := db.Open(context.Background(), db.Options{Driver: "memory", Key: config.DefaultStorageKey}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeDB() })

	r, err := New(Deps{
		Config: config.Config{
			SessionSecret: "test-secret",
			SiteURL:       "https://feed.example.com",
			DefaultUserID: config.DefaultUserID,
			CORSOrigins:   []string{"https://app.example.com"},
		},
		Feed:         services.NewFeedService(store),
		Logger:       logger,
		TemplatesDir: "../../web/templates",
	})
	require.NoError(t, err)
	return r, store
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, r http.Handler, body string) models.Post {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/posts", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

func TestAPIFeedFlow(t *testing.T) {
	r := newTestRouter(t)

	post := createPost(t, r, `{"content":"<p>Hello world</p>","community":"Book Club"}`)
	assert.Equal(t, "Book Club", post.Community)
	assert.Equal(t, "John Doe", post.Author.Name)
	assert.Zero(t, post.Reactions)

	w := doJSON(r, http.MethodPost, "/api/posts/"+post.ID+"/reactions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var reacted models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reacted))
	assert.Equal(t, 1, reacted.Reactions)

	w = doJSON(r, http.MethodPost, "/api/posts/"+post.ID+"/comments", `{"content":"  nice  "}`)
	require.Equal(t, http.StatusOK, w.Code)
	var commented models.Post
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &commented))
	require.Len(t, commented.Comments, 1)
	assert.Equal(t, "nice", commented.Comments[0].Content)

	w = doJSON(r, http.MethodGet, "/api/posts?community=Book%20Club", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Posts []models.Post `json:"posts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Posts, 1)
	assert.Equal(t, post.ID, list.Posts[0].ID)

	w = doJSON(r, http.MethodGet, "/api/posts/"+post.ID+"/share", "")
	require.Equal(t, http.StatusOK, w.Code)
	var link services.ShareLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Equal(t, "https://feed.example.com/?post="+post.ID, link.URL)
	assert.Equal(t, services.ShareTitle, link.Title)
}

func TestAPIErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"empty editor body", http.MethodPost, "/api/posts", `{"content":"<p><br></p>"}`, http.StatusBadRequest},
		{"unknown community", http.MethodPost, "/api/posts", `{"content":"hi","community":"Nowhere"}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/posts", `{`, http.StatusBadRequest},
		{"react missing", http.MethodPost, "/api/posts/missing/reactions", "", http.StatusNotFound},
		{"comment missing", http.MethodPost, "/api/posts/missing/comments", `{"content":"hi"}`, http.StatusNotFound},
		{"get missing", http.MethodGet, "/api/posts/missing", "", http.StatusNotFound},
		{"share missing", http.MethodGet, "/api/posts/missing/share", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestAPIReadCollections(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user1"`)

	w = doJSON(r, http.MethodGet, "/api/communities", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Communities []models.Community `json:"communities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Communities, 3)
}

func TestAPICORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestFeedPages(t *testing.T) {
	r := newTestRouter(t)
	post := createPost(t, r, `{"content":"<p>Rendered on the feed</p>"}`)

	w := doJSON(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rendered on the feed")
	assert.Contains(t, w.Body.String(), "John Doe")

	w = doJSON(r, http.MethodGet, "/?order=top", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rendered on the feed")

	w = doJSON(r, http.MethodGet, "/c/Tech%20Enthusiasts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rendered on the feed")

	w = doJSON(r, http.MethodGet, "/c/Nowhere", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/communities", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fitness Community")

	w = doJSON(r, http.MethodGet, "/p/"+post.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rendered on the feed")

	w = doJSON(r, http.MethodGet, "/p/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSharedLinkRedirects(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/?post=abc", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/p/abc", w.Header().Get("Location"))
}

func TestFormMutations(t *testing.T) {
	r := newTestRouter(t)

	w := doForm(r, "/submit", url.Values{"content": {"<p>From the composer</p>"}, "community": {"Fitness Community"}})
	require.Equal(t, http.StatusFound, w.Code)
	location := w.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/p/"), location)
	postID := strings.TrimPrefix(location, "/p/")

	w = doForm(r, "/p/"+postID+"/react", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())

	// the detail page was cached before the comment below
	w = doJSON(r, http.MethodGet, "/p/"+postID, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doForm(r, "/p/"+postID+"/comment", url.Values{"content": {"**great** session"}})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/p/"+postID+"#comments", w.Header().Get("Location"))

	w = doJSON(r, http.MethodGet, "/p/"+postID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>great</strong> session")

	w = doForm(r, "/p/missing/react", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitEmptyPostShowsError(t *testing.T) {
	r := newTestRouter(t)

	w := doForm(r, "/submit", url.Values{"content": {"<p><br></p>"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "post content is empty")
}

func TestSwitchUser(t *testing.T) {
	r := newTestRouter(t)

	w := doForm(r, "/session/user", url.Values{"user_id": {"ghost"}})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doForm(r, "/session/user", url.Values{"user_id": {"user1"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.NotEmpty(t, w.Header().Get("Set-Cookie"))
}

func TestDetailShowsWritesFromAnotherWriter(t *testing.T) {
	r, store := newTestRouterWithStore(t)
	ctx := context.Background()
	post := createPost(t, r, `{"content":"<p>Shared store</p>"}`)

	w := doJSON(r, http.MethodGet, "/p/"+post.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "written elsewhere")

	// feedctl or another server instance on the same store
	other := services.NewFeedService(store)
	user, err := other.FindUser(ctx, config.DefaultUserID)
	require.NoError(t, err)
	_, err = other.AddComment(ctx, post.ID, *user, "written elsewhere")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = other.AddReaction(ctx, post.ID)
		require.NoError(t, err)
	}

	w = doJSON(r, http.MethodGet, "/p/"+post.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "written elsewhere")
	assert.Contains(t, w.Body.String(), "<span>2</span>")

	// unchanged document: served again, still current
	w = doJSON(r, http.MethodGet, "/p/"+post.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "written elsewhere")
}
