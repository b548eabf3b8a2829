// Package server boots the HTTP server: config, database, cache, and the
// middleware stack around the API routes.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarthakjain/storerate/app/routes"
	"github.com/sarthakjain/storerate/config"
	"github.com/sarthakjain/storerate/pkg/cache"
	"github.com/sarthakjain/storerate/pkg/database"
	"github.com/sarthakjain/storerate/pkg/logger"
	"github.com/sarthakjain/storerate/pkg/metrics"
	"github.com/sarthakjain/storerate/pkg/middleware"
	"github.com/sarthakjain/storerate/pkg/reqid"
	"github.com/sarthakjain/storerate/pkg/router"
)

// rateLimit is the per-IP request budget on the public API.
const (
	rateLimitMax    = 200
	rateLimitWindow = time.Minute
)

// Start boots every subsystem and serves until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// The cache is optional: log and continue without it.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, continuing without cache", "error", err)
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(rateLimitMax, rateLimitWindow),
	)
	routes.RegisterAPI(r)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	logger.Close()
	return nil
}
