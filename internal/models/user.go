package models

// User is a member of the feed. Users come from seed data and have no edit path.
type User struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Avatar      string   `json:"avatar" yaml:"avatar"`
	Communities []string `json:"communities" yaml:"communities"` // names of joined communities
}

// Snapshot copies the user's display fields for embedding into a post or comment.
func (u User) Snapshot() Author {
	return Author{Name: u.Name, Avatar: u.Avatar}
}

// Author is the denormalized author snapshot stored on posts and comments.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
}
