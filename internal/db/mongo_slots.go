package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoSlot struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	Revision  int64     `bson:"revision"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSlots stores each slot as one document of a collection, keyed by _id.
type MongoSlots struct {
	coll *mongo.Collection
}

func NewMongoSlots(coll *mongo.Collection) *MongoSlots {
	return &MongoSlots{coll: coll}
}

func (m *MongoSlots) Get(ctx context.Context, key string) ([]byte, int64, error) {
	var slot mongoSlot
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, 0, ErrSlotNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read slot %s: %w", key, err)
	}
	return []byte(slot.Value), slot.Revision, nil
}

func (m *MongoSlots) Put(ctx context.Context, key string, value []byte, expectRev int64) (int64, error) {
	now := time.Now()

	if expectRev == 0 {
		_, err := m.coll.InsertOne(ctx, mongoSlot{Key: key, Value: string(value), Revision: 1, UpdatedAt: now})
		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrConflict
		}
		if err != nil {
			return 0, fmt.Errorf("create slot %s: %w", key, err)
		}
		return 1, nil
	}

	res, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": key, "revision": expectRev},
		bson.M{
			"$set": bson.M{"value": string(value), "updated_at": now},
			"$inc": bson.M{"revision": 1},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("update slot %s: %w", key, err)
	}
	if res.MatchedCount == 0 {
		return 0, ErrConflict
	}
	return expectRev + 1, nil
}
