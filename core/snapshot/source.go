package snapshot

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"descriptor-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
)

// Document is the on-disk shape of a snapshot in every format.
type Document[T any] struct {
	// Descriptors is the full desired state.
	Descriptors []T `json:"descriptors" yaml:"descriptors" toml:"descriptors" msgpack:"descriptors"`
}

// Source fetches a snapshot document from object storage.
// It is safe for concurrent use.
type Source[T any] struct {
	client storage.Client
	bucket string
	object string
	ttl    time.Duration

	mu    sync.RWMutex
	entry *entry[T]
	// gen is bumped by Invalidate; fetches started before it are not cached.
	gen     uint64
	sf      singleflight.Group
	nowFunc func() time.Time
}

// entry is one fetched snapshot.
type entry[T any] struct {
	descriptors []T
	built       time.Time
}

// NewSource creates a Source reading object from bucket.
// Fetched snapshots are reused for ttl; a zero ttl fetches on every Load.
func NewSource[T any](client storage.Client, bucket, object string, ttl time.Duration) *Source[T] {
	return &Source[T]{
		client:  client,
		bucket:  bucket,
		object:  object,
		ttl:     ttl,
		nowFunc: time.Now,
	}
}

// Object returns the object name the source reads.
func (s *Source[T]) Object() string {
	return s.object
}

// Load returns the current snapshot, fetching it if the cached copy is missing or expired.
// Concurrent callers share one fetch.
func (s *Source[T]) Load(ctx context.Context) ([]T, error) {
	// Fast path: cached and fresh
	if descriptors, ok := s.cached(); ok {
		return descriptors, nil
	}

	// Slow path: fetch using singleflight to prevent stampedes
	result, err, _ := s.sf.Do(s.object, func() (interface{}, error) {
		if descriptors, ok := s.cached(); ok {
			return descriptors, nil
		}

		s.mu.RLock()
		gen := s.gen
		s.mu.RUnlock()

		descriptors, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}

		if s.ttl > 0 {
			s.mu.Lock()
			if s.gen == gen {
				s.entry = &entry[T]{descriptors: descriptors, built: s.nowFunc()}
			}
			s.mu.Unlock()
		}

		return descriptors, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]T), nil
}

// Invalidate drops the cached snapshot so the next Load fetches again.
// A Load already in flight is not shared with Loads started after Invalidate.
func (s *Source[T]) Invalidate() {
	s.mu.Lock()
	s.entry = nil
	s.gen++
	s.mu.Unlock()
	s.sf.Forget(s.object)
}

func (s *Source[T]) cached() ([]T, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entry == nil || s.nowFunc().Sub(s.entry.built) > s.ttl {
		return nil, false
	}
	return s.entry.descriptors, true
}

func (s *Source[T]) fetch(ctx context.Context) ([]T, error) {
	reader, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot object %s: %w", s.object, err)
	}
	defer reader.Close()

	var doc Document[T]
	if err := Decode(s.object, reader, &doc); err != nil {
		return nil, err
	}
	return doc.Descriptors, nil
}

// LoadFile reads a snapshot document from the local filesystem.
func LoadFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	var doc Document[T]
	if err := Decode(path, f, &doc); err != nil {
		return nil, err
	}
	return doc.Descriptors, nil
}
