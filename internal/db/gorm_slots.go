package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commfeed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSlots stores slots in the feed_slots table of any gorm dialect.
type GormSlots struct {
	db *gorm.DB
}

// NewGormSlots migrates the slot table and returns the backend.
func NewGormSlots(db *gorm.DB) (*GormSlots, error) {
	if err := db.AutoMigrate(&models.FeedSlot{}); err != nil {
		return nil, fmt.Errorf("migrate feed_slots: %w", err)
	}
	return &GormSlots{db: db}, nil
}

func (g *GormSlots) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var slot models.FeedSlot
	err := g.db.WithContext(ctx).Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrSlotNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read slot %s: %w", key, err)
	}
	return []byte(slot.Value), slot.Revision, nil
}

func (g *GormSlots) Put(ctx context.Context, key string, value []byte, expectRev int64) (int64, error) {
	tx := g.db.WithContext(ctx)

	if expectRev == 0 {
		slot := models.FeedSlot{
			Key:       key,
			Value:     string(value),
			Revision:  1,
			UpdatedAt: time.Now(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&slot)
		if res.Error != nil {
			return 0, fmt.Errorf("create slot %s: %w", key, res.Error)
		}
		if res.RowsAffected == 0 {
			return 0, ErrConflict
		}
		return 1, nil
	}

	res := tx.Model(&models.FeedSlot{}).
		Where("slot_key = ? AND revision = ?", key, expectRev).
		Updates(map[string]interface{}{
			"value":      string(value),
			"revision":   expectRev + 1,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update slot %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrConflict
	}
	return expectRev + 1, nil
}
