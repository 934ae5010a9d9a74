// Command hub-server starts an in-memory BookHub API server for local
// development of the client.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookhub/bookhub/internal/server"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, seeds demo data, and serves the REST API.
func main() {
	// Flags
	addr := flag.String("addr", ":5002", "listen address")
	jwtKey := flag.String("jwt-key", "", "HS256 signing key (required)")
	accessTTL := flag.Duration("access-ttl", 15*time.Minute, "access token TTL")
	noSeed := flag.Bool("no-seed", false, "start with empty repositories")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", *addr),
	)

	if *jwtKey == "" {
		logger.Fatal("missing jwt signing key (--jwt-key)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		SignKey:   []byte(*jwtKey),
		AccessTTL: *accessTTL,
		Logger:    logger,
	})
	if !*noSeed {
		if err := srv.Seed(ctx); err != nil {
			logger.Fatal("seed", zap.Error(err))
		}
		logger.Info("seeded demo data")
	}

	e := srv.Echo()
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", *addr))
		errCh <- e.Start(*addr)
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			_ = e.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
