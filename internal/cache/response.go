// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for JSON GET responses.
// Entries are grouped by family ("books", "shop", ...) so a write can drop
// every cached listing, search and detail of that family at once.
package cache

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "api:"

	// generationKeyPrefix prefixes the per-family generation counters.
	generationKeyPrefix = "api-gen:"

	// DefaultResponseTTL is how long a cached response stays valid.
	DefaultResponseTTL = 1 * time.Minute
)

// Families of cached endpoints.
const (
	FamilyCategories = "categories"
	FamilyBooks      = "books"
	FamilyAudioBooks = "audiobooks"
	FamilyShop       = "shop"
)

// ResponseCache stores successful GET responses in Valkey. A nil
// *ResponseCache is valid and caches nothing.
//
// Each family has a generation counter and every cached key embeds the
// generation read before the handler ran. Invalidate bumps the counter, so
// a response computed from pre-write state can only land under a key that
// is never read again.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Key returns the Valkey key for a request URI within a family generation.
func Key(family string, generation int64, requestURI string) string {
	return responseKeyPrefix + family + ":" + strconv.FormatInt(generation, 10) + ":" + requestURI
}

func generationKey(family string) string {
	return generationKeyPrefix + family
}

// Middleware serves GET requests of the family from the cache and stores
// 200 responses on a miss. Other methods pass straight through, and so does
// everything while Valkey is unreachable.
func (rc *ResponseCache) Middleware(family string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rc == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			gen, ok := rc.generation(r.Context(), family)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := Key(family, gen, r.URL.RequestURI())
			if body, ok := rc.get(r.Context(), key); ok {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				w.Write(body)
				return
			}

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}
			// A write finished while the handler ran; its snapshot is stale.
			if now, ok := rc.generation(r.Context(), family); !ok || now != gen {
				slog.Debug("response cache skip stale snapshot", "key", key)
				return
			}
			rc.set(r.Context(), key, rec.body.Bytes())
		})
	}
}

// generation reads the family's counter. A missing counter is generation 0.
func (rc *ResponseCache) generation(ctx context.Context, family string) (int64, bool) {
	gen, err := rc.client.Get(ctx, generationKey(family)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("response cache generation error", "family", family, "error", err)
		return 0, false
	}
	return gen, true
}

func (rc *ResponseCache) get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

func (rc *ResponseCache) set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate retires every cached response of the given families by moving
// them to a new generation. Entries of older generations are never read
// again and expire with their TTL. Errors are logged, never returned.
func (rc *ResponseCache) Invalidate(ctx context.Context, families ...string) {
	if rc == nil {
		return
	}
	for _, family := range families {
		gen, err := rc.client.Incr(ctx, generationKey(family)).Result()
		if err != nil {
			slog.Warn("response cache invalidate error", "family", family, "error", err)
			continue
		}
		slog.Debug("response cache invalidated", "family", family, "generation", gen)
	}
}

// recorder copies the response body while passing it through.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
