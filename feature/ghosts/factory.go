package ghosts

import (
	"context"

	"descriptor-sync/feature/ghosts/models"

	"go.uber.org/zap"
)

// Factory turns ghost descriptors into stored ghosts. It implements
// reconcile.Factory for the ghosts Service.
type Factory struct {
	store  *Store
	logger *zap.Logger

	// ctx bounds the store calls of the cycle in progress. The Service sets it
	// under its lock before every Update.
	ctx context.Context
}

// NewFactory creates a Factory writing to store.
func NewFactory(store *Store, logger *zap.Logger) *Factory {
	return &Factory{store: store, logger: logger, ctx: context.Background()}
}

// Add stores a new ghost for d. Its display name is filled in by the Update that follows.
func (f *Factory) Add(d models.Descriptor) (*models.Ghost, error) {
	g := &models.Ghost{ID: d.ID.String(), Name: d.Name}
	if err := f.store.Create(f.ctx, g); err != nil {
		return nil, err
	}
	f.logger.Debug("Ghost added", zap.String("id", g.ID), zap.String("name", g.Name))
	return g, nil
}

// Remove deletes g.
func (f *Factory) Remove(g *models.Ghost) error {
	if err := f.store.Delete(f.ctx, g); err != nil {
		return err
	}
	f.logger.Debug("Ghost removed", zap.String("id", g.ID))
	return nil
}

// Update copies d onto g in place and saves it.
func (f *Factory) Update(d models.Descriptor, g *models.Ghost) error {
	g.Name = d.Name
	g.DisplayName = d.Name + "!"
	g.Revision++
	if err := f.store.Save(f.ctx, g); err != nil {
		return err
	}
	f.logger.Debug("Ghost updated",
		zap.String("id", g.ID),
		zap.String("display_name", g.DisplayName),
		zap.Int("revision", g.Revision),
	)
	return nil
}
