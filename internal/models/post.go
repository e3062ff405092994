package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" yaml:"id"`
	Author    Author    `json:"author" yaml:"author"`
	Content   string    `json:"content" yaml:"content"` // sanitized rich-text markup
	Community string    `json:"community" yaml:"community"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reactions int       `json:"reactions" yaml:"reactions"`
	Comments  []Comment `json:"comments" yaml:"comments"`
}

// Clone returns a copy that shares no comment storage with p.
func (p Post) Clone() Post {
	out := p
	out.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)
	return out
}
