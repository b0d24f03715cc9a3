package snapshot

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"descriptor-sync/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const snapshotBody = `{"descriptors": [{"id": "1", "name": "Casper"}, {"id": "2", "name": "Slimer"}]}`

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestSource_Load(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(snapshotBody), nil).Once()

	src := NewSource[item](client, "snapshots", "ghosts.json", 0)
	items, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, wantItems, items)
	assert.Equal(t, "ghosts.json", src.Object())
	client.AssertExpectations(t)
}

func TestSource_NoCacheFetchesEveryTime(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(snapshotBody), nil).Once()
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(`{"descriptors": []}`), nil).Once()

	src := NewSource[item](client, "snapshots", "ghosts.json", 0)

	first, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, second)

	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestSource_CacheTTL(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(snapshotBody), nil).Once()
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(`{"descriptors": [{"id": "3", "name": "Stay Puft"}]}`), nil).Once()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := NewSource[item](client, "snapshots", "ghosts.json", time.Minute)
	src.nowFunc = func() time.Time { return now }

	items, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Within TTL: served from cache
	now = now.Add(30 * time.Second)
	items, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	client.AssertNumberOfCalls(t, "GetObject", 1)

	// Expired: fetched again
	now = now.Add(time.Minute)
	items, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "3", Name: "Stay Puft"}}, items)
	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestSource_Invalidate(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(snapshotBody), nil).Once()
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(snapshotBody), nil).Once()

	src := NewSource[item](client, "snapshots", "ghosts.json", time.Hour)

	_, err := src.Load(context.Background())
	require.NoError(t, err)
	src.Invalidate()
	_, err = src.Load(context.Background())
	require.NoError(t, err)

	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestSource_Errors(t *testing.T) {
	t.Run("GetObject", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
			Return(nil, errors.New("no such key"))

		src := NewSource[item](client, "snapshots", "ghosts.json", time.Minute)
		_, err := src.Load(context.Background())
		assert.ErrorContains(t, err, "failed to get snapshot object ghosts.json")
		assert.ErrorContains(t, err, "no such key")
	})

	t.Run("Decode", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
			Return(body(`not json`), nil)

		src := NewSource[item](client, "snapshots", "ghosts.json", time.Minute)
		_, err := src.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("UnsupportedObject", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "snapshots", "ghosts.csv", mock.Anything).
			Return(body(`id,name`), nil)

		src := NewSource[item](client, "snapshots", "ghosts.csv", 0)
		_, err := src.Load(context.Background())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestSource_InvalidateDuringFetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(body(snapshotBody), nil).Once()
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(`{"descriptors": [{"id": "3", "name": "Stay Puft"}]}`), nil).Once()

	src := NewSource[item](client, "snapshots", "ghosts.json", time.Hour)

	stale := make(chan []item, 1)
	go func() {
		items, err := src.Load(context.Background())
		assert.NoError(t, err)
		stale <- items
	}()
	<-started

	// A Load after Invalidate must not join the slow fetch
	src.Invalidate()
	items, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "3", Name: "Stay Puft"}}, items)

	close(release)
	assert.Len(t, <-stale, 2)

	// The slow fetch finished last but must not replace the newer snapshot
	items, err = src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "3", Name: "Stay Puft"}}, items)
	client.AssertNumberOfCalls(t, "GetObject", 2)
}

func TestSource_ConcurrentLoads(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "snapshots", "ghosts.json", mock.Anything).
		Return(body(snapshotBody), nil).Once()

	src := NewSource[item](client, "snapshots", "ghosts.json", time.Hour)

	// Warm the cache, then hammer it
	_, err := src.Load(context.Background())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := src.Load(context.Background())
			assert.NoError(t, err)
			assert.Len(t, items, 2)
		}()
	}
	wg.Wait()

	client.AssertNumberOfCalls(t, "GetObject", 1)
}
