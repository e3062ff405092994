package services

import (
	"fmt"
	"net/url"
)

const (
	ShareTitle = "Check out this post!"
	ShareText  = "I found this interesting post on Community Platform"
)

// ShareLink is what the host share capability receives for a post.
type ShareLink struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
	Text  string `json:"text" yaml:"text"`
}

// BuildShareLink points at the feed page with ?post=<id>, keeping any query already on baseURL.
func BuildShareLink(baseURL, postID string) (ShareLink, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return ShareLink{}, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("post", postID)
	u.RawQuery = q.Encode()

	return ShareLink{URL: u.String(), Title: ShareTitle, Text: ShareText}, nil
}
