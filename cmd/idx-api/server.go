package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/idx/internal/config"
	httpAdapter "github.com/aretw0/idx/pkg/adapters/http"
	"github.com/aretw0/idx/pkg/adapters/memory"
	"github.com/aretw0/idx/pkg/adapters/redis"
	"github.com/aretw0/idx/pkg/eido"
	"github.com/aretw0/idx/pkg/ports"
)

// shutdownTimeout is the deadline given to outstanding requests.
const shutdownTimeout = 5 * time.Second

// newClaimStore builds the configured claim backend. The returned func
// releases it.
func newClaimStore(ctx context.Context, settings config.Settings) (ports.ClaimStore, func() error, error) {
	switch settings.Claims.Backend {
	case config.BackendRedis:
		rc := settings.Claims.Redis
		store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", rc.Addr, err)
		}
		return store, store.Close, nil
	default:
		return memory.NewClaimStore(), func() error { return nil }, nil
	}
}

// newSource builds the EIDO agent client.
func newSource(settings config.Settings, logger *slog.Logger) *eido.Client {
	return eido.NewClient(settings.EIDOAgentURL,
		eido.WithTimeout(settings.RequestTimeout),
		eido.WithLogger(logger),
	)
}

// newHandler wires the API handler from settings.
func newHandler(settings config.Settings, logger *slog.Logger) (http.Handler, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := httpAdapter.LoadSpec(ctx); err != nil {
		return nil, nil, err
	}

	claims, closeFn, err := newClaimStore(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
	if settings.Metrics {
		opts = append(opts, httpAdapter.WithMetrics(httpAdapter.NewMetrics()))
	}

	return httpAdapter.NewHandler(newSource(settings, logger), claims, opts...), closeFn, nil
}

// serve runs handler on ln until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, handler http.Handler, ln net.Listener, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("IDX API listening", "address", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("Start shutdown...", "cause", context.Cause(ctx))

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("could not stop server: %w", err)
			}
		}
		logger.Info("IDX API stopped gracefully")
		return nil
	}
}
