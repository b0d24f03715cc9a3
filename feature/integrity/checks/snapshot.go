package checks

import (
	"context"
	"fmt"
	"slices"

	"descriptor-sync/core/snapshot"
	"descriptor-sync/core/storage"
	"descriptor-sync/feature/ghosts/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// SnapshotReport strictly types the result of a snapshot check.
type SnapshotReport struct {
	Bucket       string   `json:"bucket"`
	BucketExists bool     `json:"bucket_exists"`
	Object       string   `json:"object"`
	Readable     bool     `json:"readable"`
	Descriptors  int      `json:"descriptors"`
	Duplicates   []string `json:"duplicates"`
	Errors       []string `json:"errors"`
	Status       string   `json:"status"` // "ok", "error"
}

// CheckSnapshot verifies that the snapshot object exists in bucket and decodes,
// and reports descriptor ids that appear more than once.
// Only a failure to reach the storage is returned as an error.
func CheckSnapshot(ctx context.Context, client storage.Client, bucket, object string) (*SnapshotReport, error) {
	report := &SnapshotReport{
		Bucket:     bucket,
		Object:     object,
		Duplicates: []string{},
		Errors:     []string{},
		Status:     "ok",
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		report.fail(fmt.Sprintf("bucket %s does not exist", bucket))
		return report, nil
	}

	reader, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		report.fail(fmt.Sprintf("failed to get snapshot object %s: %v", object, err))
		return report, nil
	}
	defer reader.Close()

	var doc snapshot.Document[models.Descriptor]
	if err := snapshot.Decode(object, reader, &doc); err != nil {
		report.fail(err.Error())
		return report, nil
	}
	report.Readable = true
	report.Descriptors = len(doc.Descriptors)

	seen := make(map[string]int, len(doc.Descriptors))
	for _, d := range doc.Descriptors {
		id := d.ID.String()
		seen[id]++
		if seen[id] == 2 {
			report.Duplicates = append(report.Duplicates, id)
		}
	}
	slices.Sort(report.Duplicates)

	return report, nil
}

// FixBucket creates the snapshot bucket if it is missing.
func FixBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket, region); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Snapshot bucket ready", zap.String("bucket", bucket))
	return nil
}

func (r *SnapshotReport) fail(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Status = "error"
}
