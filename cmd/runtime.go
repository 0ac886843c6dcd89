package cmd

import (
	"fmt"

	"object-resolver/core/config"
	"object-resolver/core/database"
	"object-resolver/core/logger"
	"object-resolver/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	client storage.Client
}

func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Storage.IsValidDriver() {
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &runtime{cfg: cfg, logger: logg, client: client}, nil
}

// bucket returns the --bucket flag, or the configured bucket.
func (r *runtime) bucket() string {
	if bucketFlag != "" {
		return bucketFlag
	}
	return r.cfg.Storage.Bucket
}

// connectDB opens the optional database, logging a warning on failure.
func (r *runtime) connectDB() *gorm.DB {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		r.logger.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	r.logger.Info("Connected to manifest database", zap.String("database", r.cfg.Database.Name))
	return db
}
