package ghosts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"descriptor-sync/core/metrics"
	"descriptor-sync/core/reconcile"
	"descriptor-sync/core/setdiff"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/feature/ghosts/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeatureName labels the metrics and logs of the ghosts feature.
const FeatureName = "ghosts"

// ErrNoSource is returned by SyncFromSource when no snapshot source is configured.
var ErrNoSource = errors.New("no snapshot source configured")

// Service keeps the ghosts table in line with descriptor snapshots.
// It is safe for concurrent use; reconcile cycles are serialized.
type Service struct {
	mu         sync.Mutex
	reconciler *reconcile.Reconciler[uuid.UUID, models.Descriptor, *models.Ghost]
	factory    *Factory
	store      *Store

	source   *snapshot.Source[models.Descriptor]
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// NewService creates a ghosts service. source and recorder may be nil.
func NewService(store *Store, source *snapshot.Source[models.Descriptor], recorder *metrics.Recorder, logger *zap.Logger, policy reconcile.DuplicatePolicy) *Service {
	factory := NewFactory(store, logger)
	return &Service{
		reconciler: reconcile.New[uuid.UUID, models.Descriptor, *models.Ghost](factory, reconcile.WithDuplicatePolicy(policy)),
		factory:    factory,
		store:      store,
		source:     source,
		recorder:   recorder,
		logger:     logger,
	}
}

// Restore adopts the ghosts already stored so the next cycle keeps or removes
// them instead of inserting them again.
func (s *Service) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	for _, g := range stored {
		id, err := uuid.Parse(g.ID)
		if err != nil {
			return fmt.Errorf("stored ghost has invalid id %q: %w", g.ID, err)
		}
		if err := s.reconciler.Adopt(id, g); err != nil {
			return err
		}
	}

	s.logger.Info("Restored ghosts", zap.Int("count", len(stored)))
	return nil
}

// Sync reconciles the stored ghosts with descriptors.
// The report lists what was applied, even when err is not nil.
func (s *Service) Sync(ctx context.Context, descriptors []models.Descriptor) (*models.SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.factory.ctx = ctx
	defer func() { s.factory.ctx = context.Background() }()

	previous := s.liveGhosts()
	report, err := s.reconciler.Update(descriptors)
	s.readoptFailedRemove(err, previous)
	result := &models.SyncReport{
		Added:   report.Added,
		Removed: report.Removed,
		Updated: report.Updated,
		Live:    s.reconciler.Len(),
	}
	elapsed := time.Since(start)

	if s.recorder != nil {
		s.recorder.ObserveCycle(FeatureName, metrics.Cycle{
			Added:    len(report.Added),
			Removed:  len(report.Removed),
			Updated:  len(report.Updated),
			Live:     result.Live,
			Duration: elapsed,
			Err:      err,
		})
	}

	fields := []zap.Field{
		zap.Int("descriptors", len(descriptors)),
		zap.Int("added", len(report.Added)),
		zap.Int("removed", len(report.Removed)),
		zap.Int("updated", len(report.Updated)),
		zap.Int("live", result.Live),
		zap.Duration("duration", elapsed),
	}
	if err != nil {
		s.logger.Error("Ghost sync failed", append(fields, zap.Error(err))...)
		return result, err
	}
	s.logger.Info("Ghosts synced", fields...)
	return result, nil
}

// liveGhosts indexes the live ghosts by id. Callers hold s.mu.
func (s *Service) liveGhosts() map[uuid.UUID]*models.Ghost {
	live := make(map[uuid.UUID]*models.Ghost, s.reconciler.Len())
	for _, key := range s.reconciler.Keys() {
		if g, ok := s.reconciler.Get(key); ok {
			live[key] = g
		}
	}
	return live
}

// readoptFailedRemove puts back a ghost whose row could not be deleted, so the
// next cycle retries the delete or keeps the row if the id is described again.
func (s *Service) readoptFailedRemove(err error, previous map[uuid.UUID]*models.Ghost) {
	var cbErr *reconcile.CallbackError
	if !errors.As(err, &cbErr) || cbErr.Op != reconcile.OpRemove {
		return
	}
	id, ok := cbErr.Key.(uuid.UUID)
	if !ok {
		return
	}
	g, ok := previous[id]
	if !ok {
		return
	}
	if adoptErr := s.reconciler.Adopt(id, g); adoptErr != nil {
		s.logger.Warn("Failed to keep ghost after failed delete", zap.String("id", g.ID), zap.Error(adoptErr))
	}
}

// LoadSnapshot returns the latest snapshot from the source without syncing it.
func (s *Service) LoadSnapshot(ctx context.Context) ([]models.Descriptor, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	return s.source.Load(ctx)
}

// SyncFromSource loads the latest snapshot from the source and syncs it.
func (s *Service) SyncFromSource(ctx context.Context) (*models.SyncReport, error) {
	descriptors, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.Sync(ctx, descriptors)
}

// Refresh drops the cached snapshot and syncs from the source.
func (s *Service) Refresh(ctx context.Context) (*models.SyncReport, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}
	s.source.Invalidate()
	return s.SyncFromSource(ctx)
}

// Run syncs from the source every interval until ctx is done.
// Failed cycles are logged and retried on the next tick.
func (s *Service) Run(ctx context.Context, interval time.Duration) error {
	if s.source == nil {
		return ErrNoSource
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.SyncFromSource(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("Scheduled ghost sync failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Plan returns the ids a Sync of descriptors would add, remove and keep,
// without applying anything.
func (s *Service) Plan(descriptors []models.Descriptor) setdiff.Result[uuid.UUID] {
	s.mu.Lock()
	defer s.mu.Unlock()

	desired := setdiff.New[uuid.UUID]()
	for _, d := range descriptors {
		desired.Add(d.ID)
	}
	return setdiff.Diff(setdiff.New(s.reconciler.Keys()...), desired)
}

// List returns a copy of every live ghost in snapshot order.
func (s *Service) List() []models.Ghost {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := s.reconciler.Keys()
	ghosts := make([]models.Ghost, 0, len(keys))
	for _, key := range keys {
		if g, ok := s.reconciler.Get(key); ok {
			ghosts = append(ghosts, *g)
		}
	}
	return ghosts
}

// Get returns a copy of the live ghost with id.
func (s *Service) Get(id uuid.UUID) (models.Ghost, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.reconciler.Get(id)
	if !ok {
		return models.Ghost{}, false
	}
	return *g, true
}
