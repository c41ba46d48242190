// Package main starts an HTTP server that serves the card-synergy graph, ego
// networks and similar-card lists to the browser renderer.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/synergraph/core/cmd/api/middleware"
	"github.com/synergraph/core/internal/catalog"
	"github.com/synergraph/core/internal/config"
	"github.com/synergraph/core/internal/ego"
	"github.com/synergraph/core/internal/handlers"
	"github.com/synergraph/core/internal/logger"
)

func main() {
	if err := start(); err != nil {
		os.Exit(1)
	}
}

// start wires config and logging around run so deferred cleanup happens
// before the process exits.
func start() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return err
	}

	log, err := logger.New(cfg.IsProduction(), cfg.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, nil); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	return nil
}

// run loads the catalog, serves until ctx is done and then shuts down
// gracefully. When ready is non-nil it receives the bound address.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, ready chan<- string) error {
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	c, err := catalog.NewLoader(catalog.SourceFor(cfg.CardsSource), catalog.SourceFor(cfg.GraphSource)).Load(loadCtx)
	if err != nil {
		return fmt.Errorf("cannot load data: %w", err)
	}
	if missing := c.Validate(); len(missing) > 0 {
		log.Warn("graph vertices without a card", "count", len(missing), "vertices", missing)
	}
	log.Info("catalog loaded", "cards", len(c.Cards()), "vertices", len(c.Vertices()))

	var opts []ego.Option
	if cfg.Deduplicate {
		opts = append(opts, ego.WithDeduplication())
	}
	api := handlers.NewAPI(c, log, cfg.Threshold, opts...)

	srv := &http.Server{
		Handler:           newRouter(api, cfg.AllowedOrigin, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.Port)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Port, err)
	}
	log.Info("server starting", "addr", ln.Addr().String(), "env", cfg.Env)
	if ready != nil {
		ready <- ln.Addr().String()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "grace", cfg.ShutdownGrace)
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newRouter(api *handlers.API, allowedOrigin string, log *logger.Logger) http.Handler {
	mux := http.NewServeMux()
	api.Routes(mux)
	return middleware.RequestLog(log)(middleware.Cors(allowedOrigin)(mux))
}
