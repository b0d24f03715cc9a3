package ghosts

import (
	"context"
	"fmt"
	"strings"

	"descriptor-sync/core/database"
	"descriptor-sync/feature/ghosts/models"

	"gorm.io/gorm"
)

// Store persists ghosts.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the ghosts table and verifies its columns.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&models.Ghost{}); err != nil {
		return fmt.Errorf("failed to migrate ghosts: %w", err)
	}

	missing, err := database.MissingColumns(s.db, models.Ghost{}.TableName(), models.Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("ghosts table is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Create inserts g.
func (s *Store) Create(ctx context.Context, g *models.Ghost) error {
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("failed to create ghost %s: %w", g.ID, err)
	}
	return nil
}

// Save writes every field of g.
func (s *Store) Save(ctx context.Context, g *models.Ghost) error {
	if err := s.db.WithContext(ctx).Save(g).Error; err != nil {
		return fmt.Errorf("failed to save ghost %s: %w", g.ID, err)
	}
	return nil
}

// Delete removes g.
func (s *Store) Delete(ctx context.Context, g *models.Ghost) error {
	if err := s.db.WithContext(ctx).Delete(g).Error; err != nil {
		return fmt.Errorf("failed to delete ghost %s: %w", g.ID, err)
	}
	return nil
}

// List returns every stored ghost, oldest first.
func (s *Store) List(ctx context.Context) ([]*models.Ghost, error) {
	var ghosts []*models.Ghost
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&ghosts).Error; err != nil {
		return nil, fmt.Errorf("failed to list ghosts: %w", err)
	}
	return ghosts, nil
}
