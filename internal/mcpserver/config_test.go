package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASREDUCEEnv clears all OASREDUCE_* env vars to isolate tests from the ambient environment.
func clearOASREDUCEEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASREDUCE_CACHE_ENABLED", "OASREDUCE_CACHE_MAX_SIZE",
		"OASREDUCE_CACHE_FILE_TTL", "OASREDUCE_CACHE_URL_TTL",
		"OASREDUCE_CACHE_CONTENT_TTL", "OASREDUCE_CACHE_SWEEP_INTERVAL",
		"OASREDUCE_MAX_INLINE_SIZE", "OASREDUCE_ALLOW_PRIVATE_IPS",
		"OASREDUCE_FALLBACK_ON_ERROR", "OASREDUCE_LIST_LIMIT",
		"OASREDUCE_MAX_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASREDUCEEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
	assert.True(t, c.FallbackOnError)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASREDUCEEnv(t)
	t.Setenv("OASREDUCE_CACHE_ENABLED", "false")
	t.Setenv("OASREDUCE_CACHE_MAX_SIZE", "50")
	t.Setenv("OASREDUCE_CACHE_FILE_TTL", "30m")
	t.Setenv("OASREDUCE_CACHE_URL_TTL", "2m")
	t.Setenv("OASREDUCE_CACHE_CONTENT_TTL", "10m")
	t.Setenv("OASREDUCE_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OASREDUCE_MAX_INLINE_SIZE", "5242880")
	t.Setenv("OASREDUCE_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("OASREDUCE_FALLBACK_ON_ERROR", "false")
	t.Setenv("OASREDUCE_LIST_LIMIT", "20")
	t.Setenv("OASREDUCE_MAX_LIMIT", "500")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
	assert.False(t, c.FallbackOnError)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, 500, c.MaxLimit)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearOASREDUCEEnv(t)
	t.Setenv("OASREDUCE_CACHE_MAX_SIZE", "banana")
	t.Setenv("OASREDUCE_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("OASREDUCE_CACHE_ENABLED", "maybe")
	t.Setenv("OASREDUCE_LIST_LIMIT", "-5")
	t.Setenv("OASREDUCE_MAX_INLINE_SIZE", "abc")
	t.Setenv("OASREDUCE_MAX_LIMIT", "0")
	t.Setenv("OASREDUCE_FALLBACK_ON_ERROR", "sometimes")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.True(t, c.FallbackOnError)
}

func TestLoadConfig_PartialOverrides(t *testing.T) {
	clearOASREDUCEEnv(t)
	t.Setenv("OASREDUCE_LIST_LIMIT", "42")
	t.Setenv("OASREDUCE_CACHE_URL_TTL", "10m")

	c := loadConfig()

	assert.Equal(t, 42, c.ListLimit)
	assert.Equal(t, 10*time.Minute, c.CacheURLTTL)
	// Unchanged defaults:
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.True(t, c.CacheEnabled)
	assert.True(t, c.FallbackOnError)
}
