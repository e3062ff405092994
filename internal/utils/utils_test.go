package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasVisibleContent(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   bool
	}{
		{"empty editor", "<p><br></p>", false},
		{"whitespace", "  \n ", false},
		{"nbsp only", "<p>&nbsp;</p>", false},
		{"text", "<p>hello</p>", true},
		{"plain", "hello", true},
		{"image only", `<p><img src="https://example.com/a.png"></p>`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasVisibleContent(tt.markup))
		})
	}
}

func TestSanitizePostHTML(t *testing.T) {
	out := SanitizePostHTML(`<p class="ql-align-center">hi<script>alert(1)</script></p><img src="x" onerror="alert(1)">`)
	assert.Contains(t, out, `class="ql-align-center"`)
	assert.Contains(t, out, "hi")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onerror")

	out = SanitizePostHTML(`<iframe class="ql-video" src="https://evil.example.com/embed"></iframe>`)
	assert.NotContains(t, out, "evil.example.com")
}

func TestRenderMarkdown(t *testing.T) {
	out := string(RenderMarkdown("**nice!** <script>x</script>"))
	assert.Contains(t, out, "<strong>nice!</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestEnhanceHTMLContent(t *testing.T) {
	out := string(EnhanceHTMLContent(`<p>https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1</p><img src="a.png">`))
	assert.Contains(t, out, "https://www.youtube.com/embed/dQw4w9WgXcQ")
	assert.Contains(t, out, `loading="lazy"`)

	assert.Empty(t, string(EnhanceHTMLContent("")))
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "30 seconds ago", TimeAgo(now.Add(-30*time.Second), now))
	assert.Equal(t, "5 minutes ago", TimeAgo(now.Add(-5*time.Minute-10*time.Second), now))
	assert.Equal(t, "2 hours ago", TimeAgo(now.Add(-2*time.Hour-time.Minute), now))
	assert.Equal(t, "3 days ago", TimeAgo(now.Add(-73*time.Hour), now))
	assert.Equal(t, "2 years ago", TimeAgo(now.AddDate(-2, 0, -1), now))
	assert.Equal(t, "0 seconds ago", TimeAgo(now.Add(time.Minute), now))
}

func TestCalculateScore(t *testing.T) {
	fresh := CalculateScore(time.Hour, 10, 2)
	stale := CalculateScore(48*time.Hour, 10, 2)
	quiet := CalculateScore(time.Hour, 0, 0)

	assert.Greater(t, fresh, stale)
	assert.Greater(t, fresh, quiet)
	assert.Zero(t, quiet)
}

func TestRenderCacheRevisions(t *testing.T) {
	c, err := NewRenderCache(2, time.Minute)
	require.NoError(t, err)

	c.Put("p1", 3, "at 3")
	got, ok := c.Lookup("p1", 3)
	require.True(t, ok)
	assert.Equal(t, "at 3", got)

	// newer document: the entry is stale and dropped
	_, ok = c.Lookup("p1", 4)
	assert.False(t, ok)
	assert.Zero(t, c.Len())

	// a reader that loaded an older revision cannot overwrite a newer entry
	c.Put("p1", 5, "at 5")
	c.Put("p1", 4, "at 4")
	got, ok = c.Lookup("p1", 5)
	require.True(t, ok)
	assert.Equal(t, "at 5", got)

	_, ok = c.Lookup("p1", 4)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestRenderCacheExpiry(t *testing.T) {
	c, err := NewRenderCache(2, -time.Second)
	require.NoError(t, err)

	c.Put("p1", 1, "data")
	_, ok := c.Lookup("p1", 1)
	assert.False(t, ok)
}
