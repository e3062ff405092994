package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options selects and configures the slot backend.
type Options struct {
	Driver        string // memory, sqlite, postgres, mongo
	DSN           string
	MongoDatabase string
	Key           string
}

// Open connects the configured backend, makes sure the seed document exists and returns
// the store together with a function releasing the connection.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*Store, func() error, error) {
	slots, closeFn, err := openSlots(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established", zap.String("driver", opts.Driver))

	store := NewStore(slots, opts.Key, logger)
	if err := store.Initialize(ctx); err != nil {
		_ = closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}

func openSlots(ctx context.Context, opts Options) (Slots, func() error, error) {
	noop := func() error { return nil }

	switch opts.Driver {
	case "memory":
		return NewMemorySlots(), noop, nil
	case "sqlite":
		return openGorm(sqlite.Open(opts.DSN))
	case "postgres":
		return openGorm(postgres.Open(opts.DSN))
	case "mongo":
		return openMongo(ctx, opts)
	default:
		return nil, nil, fmt.Errorf("unknown DB_DRIVER %q", opts.Driver)
	}
}

func openGorm(dialector gorm.Dialector) (Slots, func() error, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, err
	}

	slots, err := NewGormSlots(gdb)
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return slots, sqlDB.Close, nil
}

func openMongo(ctx context.Context, opts Options) (Slots, func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.DSN))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.MongoDatabase).Collection("feed_slots")
	closeFn := func() error {
		return client.Disconnect(context.Background())
	}
	return NewMongoSlots(coll), closeFn, nil
}
