package integrity

import (
	"context"
	"errors"

	"descriptor-sync/core/storage"
	"descriptor-sync/feature/ghosts/models"
	"descriptor-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoStorage is returned by storage checks when no storage client is configured.
var ErrNoStorage = errors.New("storage is not configured")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	storage storage.Config
	object  string
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil; the
// checks that need them then fail.
func NewService(client storage.Client, storageCfg storage.Config, object string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		storage: storageCfg,
		object:  object,
		db:      db,
		logger:  logger,
	}
}

// CheckSnapshot verifies the snapshot object in the configured bucket.
func (s *Service) CheckSnapshot(ctx context.Context) (*checks.SnapshotReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckSnapshot(ctx, s.client, s.storage.Bucket, s.object)
}

// FixBucket creates the snapshot bucket if it is missing.
func (s *Service) FixBucket(ctx context.Context) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixBucket(ctx, s.client, s.storage.Bucket, s.storage.Region, s.logger)
}

// CheckSchema verifies the tables behind live objects.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.Ghost{})
}
