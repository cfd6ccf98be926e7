package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fernandoherreradelasheras/verovio/internal/api"
	"github.com/fernandoherreradelasheras/verovio/pkg/cache"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
)

// shutdownTimeout bounds graceful shutdown after an interrupt.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		backend   string
		dir       string
		redisAddr string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

The serve command starts an HTTP server exposing the artifact pipeline:
POST /v1/layout, /v1/timemap, and /v1/midi take a score document as the
request body and return the derived artifact. Artifacts are cached in the
selected backend; redis and mongo allow a shared cache across replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, backend, dir, redisAddr, mongoURI)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&backend, "cache", "file", "cache backend: file, memory, null, redis, mongo")
	cmd.Flags().StringVar(&dir, "cache-dir", "", "cache directory for the file backend")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "redis address for the redis backend")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo URI for the mongo backend")

	return cmd
}

// newServeCache builds the cache backend for the API server.
func newServeCache(backend, dir, redisAddr, mongoURI string) (cache.Cache, error) {
	switch backend {
	case "file":
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
		}
		return cache.NewFileCache(dir)
	case "memory":
		return cache.NewMemoryCache(), nil
	case "null":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(redisAddr)
	case "mongo":
		return cache.NewMongoCache(mongoURI, appName)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want file, memory, null, redis, or mongo)", backend)
	}
}

// runServe starts the HTTP server and shuts it down when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, backend, dir, redisAddr, mongoURI string) error {
	store, err := newServeCache(backend, dir, redisAddr, mongoURI)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	logger := loggerFromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(runner, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "cache", backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}
