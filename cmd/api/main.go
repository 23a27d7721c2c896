package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/itorK/ilp-kit/internal/config"
	"github.com/itorK/ilp-kit/internal/infra"
	"github.com/itorK/ilp-kit/internal/ledger"
	"github.com/itorK/ilp-kit/internal/logging"
	"github.com/itorK/ilp-kit/internal/notify"
	"github.com/itorK/ilp-kit/internal/payment"
	"github.com/itorK/ilp-kit/internal/server"
	"github.com/itorK/ilp-kit/internal/subscription"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()

	db, err := infra.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	cache, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("connect redis", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Warn("close redis", "error", err)
		}
	}()

	client := ledger.New(cfg.Ledger, logger)

	info, err := client.GetInfo(ctx)
	if err != nil {
		logger.Error("fetch ledger info", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to ledger", "uri", cfg.Ledger.URI, "currency", info.CurrencyCode)

	// Registration must succeed before serving; without it no transfer
	// notifications reach this process.
	manager := subscription.NewManager(client, cfg.BaseURI, logger)
	if err := manager.Subscribe(ctx); err != nil {
		logger.Error("subscribe to ledger", "error", err)
		os.Exit(1)
	}

	router := notify.NewRouter(client, logger)
	router.SubscribeAll(notify.NewLoggerListener(logger).Notify)

	sender := payment.NewHTTPSender(cfg.SenderURI)

	srv, err := server.New(cfg, db, cache, client, router, sender, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
