package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"descriptor-sync/core/config"
	"descriptor-sync/core/logger"
	"descriptor-sync/core/snapshot"
	"descriptor-sync/core/storage"
	"descriptor-sync/feature/ghosts/models"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishObject string

// publishCmd uploads a local snapshot to the storage bucket.
var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a ghost snapshot to storage",
	Long: `Validate a local ghost snapshot and upload it to the configured bucket, where
the server and 'sync ghosts' read it. The object name defaults to SNAPSHOT_OBJECT
and must use the same format as the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishObject, "object", "", "Object name (default SNAPSHOT_OBJECT)")
	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	object := publishObject
	if object == "" {
		object = cfg.Snapshot.Object
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	count, err := publishSnapshot(ctx, client, cfg.Storage, args[0], object)
	if err != nil {
		return err
	}

	l.Info("Snapshot published",
		zap.String("bucket", cfg.Storage.Bucket),
		zap.String("object", object),
		zap.Int("descriptors", count),
	)
	return nil
}

// publishSnapshot validates the snapshot at path and uploads it as object.
// It returns the number of descriptors in the snapshot.
func publishSnapshot(ctx context.Context, client storage.Client, cfg storage.Config, path, object string) (int, error) {
	fileFormat, err := snapshot.FormatOf(path)
	if err != nil {
		return 0, err
	}
	objectFormat, err := snapshot.FormatOf(object)
	if err != nil {
		return 0, err
	}
	if fileFormat != objectFormat {
		return 0, fmt.Errorf("file format %s does not match object format %s", fileFormat, objectFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc snapshot.Document[models.Descriptor]
	if err := snapshot.DecodeFormat(fileFormat, bytes.NewReader(data), &doc); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	if err := storage.EnsureBucket(ctx, client, cfg.Bucket, cfg.Region); err != nil {
		return 0, err
	}

	_, err = client.PutObject(ctx, cfg.Bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: snapshot.ContentType(fileFormat),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upload snapshot %s: %w", object, err)
	}
	return len(doc.Descriptors), nil
}
