// Package main runs the platform backend API service.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	app "github.com/chefos/platform/internal/app"
	"github.com/chefos/platform/internal/app/httpapi"
	"github.com/chefos/platform/internal/app/storage/postgres"
	"github.com/chefos/platform/internal/config"
	"github.com/chefos/platform/internal/identity"
	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/internal/metrics"
)

func main() {
	addr := flag.String("addr", "", "listen address, overrides HOST/PORT")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.NewDefault("platform").Fatalf("load config: %v", err)
	}
	if *addr == "" {
		*addr = cfg.Addr()
	}
	if cfg.Timezone != "" {
		os.Setenv("TZ", cfg.Timezone)
	}

	log := logging.New("platform", cfg.LogLevel)

	stores := app.Stores{}
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			cancel()
			log.Fatalf("connect database: %v", err)
		}
		if err := postgres.Apply(ctx, db); err != nil {
			cancel()
			log.Fatalf("apply migrations: %v", err)
		}
		cancel()
		defer db.Close()

		store := postgres.New(db)
		stores.Products = store
		stores.Users = store
	} else {
		log.Warnf("DATABASE_URL not set; using in-memory store")
	}

	provider := identity.New(cfg.IdentityDomain, cfg.IdentityClientID, cfg.IdentityClientSecret, cfg.IdentityAudience, log)

	application, err := app.New(stores, provider, cfg.Env, log)
	if err != nil {
		log.Fatalf("build application: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := application.Start(ctx); err != nil {
		log.Fatalf("start application: %v", err)
	}

	m := metrics.New()
	handler := httpapi.NewHandler(application, log, m, httpapi.Options{
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
		AllowedOrigins:     cfg.AllowedOrigins(),
		LogRequests:        !cfg.DisableRequestLogging,
	})

	server := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("platform API listening on %s", *addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Infof("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.Errorf("application stop: %v", err)
	}

	log.Infof("stopped")
}
