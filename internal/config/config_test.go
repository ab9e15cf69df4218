// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "SEED_CATALOG",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "CACHE_TTL",
	"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	"MEDIA_DIR", "MEDIA_URL_PREFIX",
	"UPLOAD_TEMP_DIR", "UPLOAD_MAX_BYTES", "IMAGE_CONVERTER", "MAGICK_BINARY",
	"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "TRUSTED_PROXIES",
}

// clearEnv sets every key Load reads to "", which envOrDefault treats the
// same as unset. t.Setenv restores the previous values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.True(t, cfg.IsDev())
	assert.True(t, cfg.SeedCatalog)
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, "6379", cfg.ValkeyPort)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Equal(t, "media", cfg.MediaDir)
	assert.Equal(t, "/media", cfg.MediaURLPrefix)
	assert.Equal(t, os.TempDir(), cfg.UploadTempDir)
	assert.Equal(t, int64(5<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "magick", cfg.ImageConverter)
	assert.Equal(t, "convert", cfg.MagickBinary)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("VALKEY_HOST", "valkey")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("IMAGE_CONVERTER", "native")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.7,fd00::1/64")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.False(t, cfg.IsDev())
	assert.False(t, cfg.SeedCatalog)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, int64(1<<20), cfg.UploadMaxBytes)
	assert.Equal(t, "native", cfg.ImageConverter)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.7/32"),
		netip.MustParsePrefix("fd00::/64"),
	}, cfg.TrustedProxies)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"malformed bool", map[string]string{"SEED_CATALOG": "maybe"}, "SEED_CATALOG"},
		{"malformed duration", map[string]string{"CACHE_TTL": "soon"}, "CACHE_TTL"},
		{"malformed size", map[string]string{"UPLOAD_MAX_BYTES": "5MB"}, "UPLOAD_MAX_BYTES"},
		{"zero upload limit", map[string]string{"UPLOAD_MAX_BYTES": "0"}, "UPLOAD_MAX_BYTES"},
		{"negative rate", map[string]string{"RATE_LIMIT_RPS": "-1"}, "RATE_LIMIT_RPS"},
		{"malformed proxy", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8,proxy.local"}, "TRUSTED_PROXIES"},
		{"malformed proxy prefix", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/99"}, "TRUSTED_PROXIES"},
		{"unknown converter in production", map[string]string{"APP_ENV": "production", "IMAGE_CONVERTER": "vips"}, "IMAGE_CONVERTER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoad_UnknownConverterAllowedInDev(t *testing.T) {
	clearEnv(t)
	t.Setenv("IMAGE_CONVERTER", "vips")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "vips", cfg.ImageConverter)
}
