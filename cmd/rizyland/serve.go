package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikidav23/rizy-land-mini-a/internal/cache"
	"github.com/nikidav23/rizy-land-mini-a/internal/config"
	"github.com/nikidav23/rizy-land-mini-a/internal/handlers"
	"github.com/nikidav23/rizy-land-mini-a/internal/imaging"
	"github.com/nikidav23/rizy-land-mini-a/internal/middleware"
	"github.com/nikidav23/rizy-land-mini-a/internal/router"
	"github.com/nikidav23/rizy-land-mini-a/internal/storage"
	"github.com/nikidav23/rizy-land-mini-a/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// The catalog lives in memory for the lifetime of the process.
	db := store.NewDB()
	if cfg.SeedCatalog {
		store.Seed(db)
	}

	// Connect to Valkey for the response cache (optional).
	var responseCache *cache.ResponseCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			return fmt.Errorf("connect to valkey: %w", err)
		}
		defer valkeyClient.Close()
		responseCache = cache.NewResponseCache(valkeyClient, cfg.CacheTTL)
	} else {
		slog.Warn("valkey not configured, response cache disabled")
	}

	bucket, mediaDir, err := openBucket(cfg)
	if err != nil {
		return err
	}

	converter, err := imaging.New(cfg.ImageConverter, cfg.MagickBinary)
	if err != nil {
		// Production rejects unknown converters in config.Load.
		slog.Warn("unknown image converter, using native", "converter", cfg.ImageConverter)
		converter = &imaging.Native{}
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies...)
	defer rateLimiter.Stop()

	// Initialize data stores.
	bookStore := store.NewBookStore(db)
	audioBookStore := store.NewAudioBookStore(db)
	productStore := store.NewProductStore(db)

	// Create handler groups with their dependencies.
	r := router.New(router.Deps{
		Catalog: handlers.NewCatalog(store.NewCategoryStore(db), bookStore, audioBookStore, responseCache),
		Library: handlers.NewLibrary(store.NewLibraryStore(db), store.NewPurchaseStore(db)),
		Shop:    handlers.NewShop(productStore, responseCache),
		Users:   handlers.NewUsers(store.NewUserStore(db)),
		Uploads: handlers.NewUploads(bookStore, audioBookStore, productStore, converter, bucket, responseCache, handlers.UploadConfig{
			TempDir:  cfg.UploadTempDir,
			MaxBytes: cfg.UploadMaxBytes,
		}),
		Cache:          responseCache,
		RateLimiter:    rateLimiter,
		MediaDir:       mediaDir,
		MediaURLPrefix: cfg.MediaURLPrefix,
	})

	// WriteTimeout must accommodate image conversion of large uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "converter", cfg.ImageConverter)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// openBucket picks where converted images are published: the S3 bucket
// when configured, the local media directory otherwise. The returned
// directory is empty for S3, since nothing is served from disk then.
func openBucket(cfg *config.Config) (storage.Bucket, string, error) {
	s3Bucket, err := storage.NewS3(storage.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		return nil, "", fmt.Errorf("initialize s3 storage: %w", err)
	}
	if s3Bucket != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		return s3Bucket, "", nil
	}

	local, err := storage.NewLocalDisk(cfg.MediaDir, cfg.MediaURLPrefix)
	if err != nil {
		return nil, "", fmt.Errorf("initialize media directory: %w", err)
	}
	slog.Warn("s3 storage not configured, publishing images to local disk", "dir", local.Dir())
	return local, local.Dir(), nil
}
