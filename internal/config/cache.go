package config

import "time"

// CacheConfig defines settings for the room-listing response cache.
// When Enabled is false or no Redis client is configured, caching is
// disabled. TTL defines the lifetime of cache entries; MaxBodyBytes
// caps the size of responses worth caching.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Rooms are seed data, so a short TTL is only needed to pick up
// re-seeding; 30 seconds is the default.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		Prefix:       envStr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
