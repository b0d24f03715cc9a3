package snapshot

// Config holds configuration for the desired-state snapshot source.
type Config struct {
	// Object is the object name of the snapshot document in the storage bucket.
	// Its extension selects the format (.json, .yaml, .toml, .msgpack).
	Object string `mapstructure:"object" default:"ghosts.json"`
	// CacheTTLSeconds is how long a fetched snapshot is reused. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
	// IntervalSeconds is the delay between background reconcile cycles. Zero disables polling.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"60"`
	// DuplicatePolicy resolves descriptors sharing one id (last_wins, first_wins, reject).
	DuplicatePolicy string `mapstructure:"duplicate_policy" default:"last_wins"`
}
