package models

import (
	"time"
)

// FeedSlot is one row of the key-value table the SQL backends keep the document in.
type FeedSlot struct {
	Key       string    `gorm:"column:slot_key;primaryKey;size:191" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Revision  int64     `gorm:"not null;default:0" json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (FeedSlot) TableName() string {
	return "feed_slots"
}
