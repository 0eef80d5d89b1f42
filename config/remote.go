package config

import (
	"strconv"
	"time"
)

// RemoteConfig holds the remote catalog service endpoint settings.
type RemoteConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL int64 // seconds; 0 disables list caching
}

// LoadRemoteConfig reads the remote catalog service settings from env.
func LoadRemoteConfig() RemoteConfig {
	timeout := 15
	if v, err := strconv.Atoi(GetEnv("REMOTE_TIMEOUT_SECONDS", "")); err == nil && v > 0 {
		timeout = v
	}
	ttl := int64(0)
	if v, err := strconv.ParseInt(GetEnv("REMOTE_CACHE_TTL_SECONDS", ""), 10, 64); err == nil && v > 0 {
		ttl = v
	}
	return RemoteConfig{
		BaseURL:  GetEnv("REMOTE_API_URL", "https://api.escuelajs.co/api/v1"),
		Timeout:  time.Duration(timeout) * time.Second,
		CacheTTL: ttl,
	}
}
