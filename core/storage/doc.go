// Package storage provides an abstraction layer over S3-compatible object storage.
//
// Desired-state snapshots are published to and fetched from a bucket through the
// Client interface, which wraps the MinIO Go client. This supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// Client only exposes the operations the service needs, which keeps it easy to mock
// in unit tests (see core/storage/mocks).
//
//   - BucketExists / MakeBucket: used by EnsureBucket before publishing.
//   - PutObject: uploads a snapshot document.
//   - GetObject: streams a snapshot document back.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
