// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// SeedCatalog loads the starter catalog on startup.
	SeedCatalog bool

	// Valkey (Redis-compatible cache). An empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheTTL       time.Duration

	// S3-compatible object storage for converted images. When unset, images
	// are written to MediaDir and served under MediaURLPrefix.
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	MediaDir       string
	MediaURLPrefix string

	// Uploads
	UploadTempDir  string
	UploadMaxBytes int64
	ImageConverter string // "magick" or "native"
	MagickBinary   string

	// Per-IP rate limit
	RateLimitRPS   float64
	RateLimitBurst int

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers identify the client. Empty means clients are keyed by their
	// connection address.
	TrustedProxies []netip.Prefix
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error for malformed values,
// and for unsafe ones in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		MediaDir:       envOrDefault("MEDIA_DIR", "media"),
		MediaURLPrefix: envOrDefault("MEDIA_URL_PREFIX", "/media"),

		UploadTempDir:  envOrDefault("UPLOAD_TEMP_DIR", os.TempDir()),
		ImageConverter: envOrDefault("IMAGE_CONVERTER", "magick"),
		MagickBinary:   envOrDefault("MAGICK_BINARY", "convert"),
	}

	var errs []error
	cfg.SeedCatalog, errs = parseEnv(errs, "SEED_CATALOG", true, strconv.ParseBool)
	cfg.CacheTTL, errs = parseEnv(errs, "CACHE_TTL", time.Minute, time.ParseDuration)
	cfg.UploadMaxBytes, errs = parseEnv(errs, "UPLOAD_MAX_BYTES", int64(5<<20), func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
	cfg.RateLimitRPS, errs = parseEnv(errs, "RATE_LIMIT_RPS", 20.0, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	cfg.RateLimitBurst, errs = parseEnv(errs, "RATE_LIMIT_BURST", 40, strconv.Atoi)
	cfg.TrustedProxies, errs = parseEnv(errs, "TRUSTED_PROXIES", []netip.Prefix(nil), parsePrefixes)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", cfg.UploadMaxBytes)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	if cfg.Env == "production" {
		if cfg.ImageConverter != "magick" && cfg.ImageConverter != "native" {
			return nil, fmt.Errorf("IMAGE_CONVERTER must be magick or native in production, got %q", cfg.ImageConverter)
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseEnv parses an optional typed variable. Parse failures are appended
// to errs and the fallback is returned.
func parseEnv[T any](errs []error, key string, fallback T, parse func(string) (T, error)) (T, []error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, errs
	}
	v, err := parse(raw)
	if err != nil {
		return fallback, append(errs, fmt.Errorf("%s: invalid value %q: %w", key, raw, err))
	}
	return v, errs
}

// parsePrefixes parses a comma-separated list of CIDR prefixes. A bare
// address is taken as a single-host prefix.
func parsePrefixes(raw string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if strings.Contains(field, "/") {
			p, err := netip.ParsePrefix(field)
			if err != nil {
				return nil, err
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(field)
		if err != nil {
			return nil, err
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}
