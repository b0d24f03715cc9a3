// Package config provides configuration management for descriptor-sync.
//
// It uses Viper to read environment variables (optionally from a .env file loaded
// with godotenv). Every key and its default comes from the `mapstructure` and
// `default` struct tags of the partial configurations.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key (SERVER_PORT, SERVER_API_KEY)
//   - Database: driver and connection of the live object store (DATABASE_DRIVER, ...)
//   - Storage: S3/MinIO credentials and the snapshot bucket (STORAGE_BUCKET, ...)
//   - Snapshot: snapshot object, cache TTL, poll interval, duplicate policy
//     (SNAPSHOT_OBJECT, SNAPSHOT_CACHE_TTL_SECONDS, SNAPSHOT_INTERVAL_SECONDS,
//     SNAPSHOT_DUPLICATE_POLICY)
//   - Log: level and format (LOG_LEVEL, LOG_FORMAT)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Snapshot.Object)
package config
