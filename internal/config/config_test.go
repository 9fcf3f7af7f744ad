package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 15*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Minute, cfg.ActivationExpiry)
	assert.Equal(t, 5*time.Minute, cfg.ResetExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxImageBytes)
	assert.Equal(t, int64(500*1024*1024), cfg.MaxVideoBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("JWT_EXPIRY_HOURS", "1")
	t.Setenv("MAX_IMAGE_SIZE_MB", "2")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxImageBytes)
}

func TestGetEnvIntBadValue(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")

	cfg := Load()

	assert.Equal(t, 10, cfg.BcryptCost)
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"https://a.example"}, parseOrigins("https://a.example"))
	assert.Equal(t,
		[]string{"https://a.example", "https://b.example"},
		parseOrigins(" https://a.example , https://b.example ,"),
	)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "activation:abc:used", CacheKey.ActivationUsedKey("abc"))
	assert.Equal(t, "reset:abc:used", CacheKey.ResetUsedKey("abc"))
}
