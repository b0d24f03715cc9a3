package ghosts_test

import (
	"io"
	"strings"
	"testing"

	"descriptor-sync/core/database"
	"descriptor-sync/core/metrics"
	"descriptor-sync/core/reconcile"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/core/storage/mocks"
	"descriptor-sync/feature/ghosts"
	"descriptor-sync/feature/ghosts/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	casperID = uuid.MustParse("6f1c2a0e-8d7b-4c55-9a43-2f7e0b1d9c11")
	slimerID = uuid.MustParse("0b5e7d3a-1c2f-4e8a-b6d9-7a4c3e2f1b00")
	stayID   = uuid.MustParse("d2a8c4e6-3b1f-4a7d-9e5c-8f6b0a2d4c13")
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   ":memory:",
	})
	require.NoError(t, err)
	return db
}

func newTestStore(t *testing.T) *ghosts.Store {
	t.Helper()
	store := ghosts.NewStore(newTestDB(t))
	require.NoError(t, store.Migrate())
	return store
}

type serviceOptions struct {
	source   *snapshot.Source[models.Descriptor]
	recorder *metrics.Recorder
	policy   reconcile.DuplicatePolicy
}

func newTestService(t *testing.T, store *ghosts.Store, opts serviceOptions) *ghosts.Service {
	t.Helper()
	if opts.policy == "" {
		opts.policy = reconcile.LastWins
	}
	return ghosts.NewService(store, opts.source, opts.recorder, zap.NewNop(), opts.policy)
}

// newMockSource serves body as the "snapshots/ghosts.json" object.
func newMockSource(body string) (*snapshot.Source[models.Descriptor], *mocks.Client) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil).Once()
	return snapshot.NewSource[models.Descriptor](client, "snapshots", "ghosts.json", 0), client
}
