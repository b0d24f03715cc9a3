package cmd

import (
	"context"
	"fmt"
	"time"

	"descriptor-sync/core/config"
	"descriptor-sync/core/database"
	"descriptor-sync/core/metrics"
	"descriptor-sync/core/reconcile"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/core/storage"
	"descriptor-sync/feature/ghosts"
	"descriptor-sync/feature/ghosts/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// connect opens the database and the storage client. Either may be nil when
// its connection fails; the failure is logged.
func connect(cfg *config.Config, logg *zap.Logger) (*gorm.DB, storage.Client) {
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Database connection failed", zap.Error(err))
	} else {
		db = conn
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Failed to create storage client", zap.Error(err))
	}

	return db, client
}

// newGhostService wires the ghosts service on db. A nil client disables the
// snapshot source. Stored ghosts are restored before it is returned.
func newGhostService(ctx context.Context, cfg *config.Config, logg *zap.Logger, db *gorm.DB, client storage.Client, recorder *metrics.Recorder) (*ghosts.Service, error) {
	if db == nil {
		return nil, fmt.Errorf("ghosts require a database")
	}

	policy, err := reconcile.ParseDuplicatePolicy(cfg.Snapshot.DuplicatePolicy)
	if err != nil {
		return nil, err
	}

	store := ghosts.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}

	var source *snapshot.Source[models.Descriptor]
	if client != nil {
		source = snapshot.NewSource[models.Descriptor](client, cfg.Storage.Bucket, cfg.Snapshot.Object,
			time.Duration(cfg.Snapshot.CacheTTLSeconds)*time.Second)
	}

	svc := ghosts.NewService(store, source, recorder, logg.With(zap.String("feature", ghosts.FeatureName)), policy)
	if err := svc.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore ghosts: %w", err)
	}
	return svc, nil
}
