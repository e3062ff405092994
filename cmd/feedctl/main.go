// Command feedctl inspects and changes the feed document from the shell, against the same
// store the server uses.
package main

import (
	"context"
	"fmt"
	"os"

	"commfeed/internal/config"
	"commfeed/internal/db"
	"commfeed/internal/logging"
	"commfeed/internal/services"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	open := func(ctx context.Context) (*app, error) {
		store, closeDB, err := db.Open(ctx, db.Options{
			Driver:        cfg.DBDriver,
			DSN:           cfg.DatabaseURL,
			MongoDatabase: cfg.MongoDatabase,
			Key:           cfg.StorageKey,
		}, logger)
		if err != nil {
			return nil, err
		}
		return &app{
			store:  store,
			feed:   services.NewFeedService(store, services.WithLogger(logger)),
			close:  closeDB,
			cfg:    cfg,
			logger: logger,
		}, nil
	}

	rootCmd, closeApp := newRootCmd(open)
	err = rootCmd.Execute()
	if cerr := closeApp(); cerr != nil {
		logger.Warn("Closing store failed", zap.Error(cerr))
	}
	if err != nil {
		logger.Debug("feedctl failed", zap.Error(err))
		os.Exit(1)
	}
}
