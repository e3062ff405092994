package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Author    Author    `json:"author" yaml:"author"`
	Content   string    `json:"content" yaml:"content"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}
