// Package server owns the process lifecycle: booting resources, serving
// HTTP and shutting down gracefully.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/config"
	"github.com/shashiranjanraj/kalaghar/internal/kernel"
	"github.com/shashiranjanraj/kalaghar/pkg/cache"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
	"github.com/shashiranjanraj/kalaghar/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Resources are the connections opened by Boot.
type Resources struct {
	Store *repositories.Store
	Cache cache.Store
	Disk  storage.Disk
}

// Boot loads configuration, sets up logging and opens the store, cache and
// storage disks.
func Boot(ctx context.Context) (*Resources, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Setup(); err != nil {
		return nil, err
	}

	store, err := repositories.Open(ctx, config.StoreDriver())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	c, err := cache.Connect(ctx, config.RedisAddr(), config.RedisPassword())
	if err != nil {
		logger.Warn("cache: redis unavailable, using in-memory cache", "addr", config.RedisAddr(), "error", err)
		c = cache.NewMemory()
	}

	storage.Connect(ctx)

	return &Resources{Store: store, Cache: c, Disk: storage.Default()}, nil
}

// Close releases everything Boot opened.
func (r *Resources) Close(ctx context.Context) {
	if err := r.Store.Close(ctx); err != nil {
		logger.Warn("store close failed", "error", err)
	}
	if err := r.Cache.Close(); err != nil {
		logger.Warn("cache close failed", "error", err)
	}
	logger.Close()
}

// Kernel builds the HTTP kernel over booted resources.
func (r *Resources) Kernel() *kernel.HTTPKernel {
	return kernel.NewHTTPKernel(kernel.Deps{
		Store:            r.Store,
		Cache:            r.Cache,
		Disk:             r.Disk,
		AllowAdminSignup: config.AllowAdminSignup(),
		MaxUploadBytes:   config.MaxUploadBytes(),
		CORSOrigins:      config.CORSOrigins(),
	})
}

// Start boots the application and serves until SIGINT or SIGTERM.
func Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := Boot(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           res.Kernel().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("kalaghar listening", "addr", srv.Addr, "env", config.AppEnv(), "store", res.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			res.Close(context.Background())
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	res.Close(shutdownCtx)
	return err
}
