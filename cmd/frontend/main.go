// Package main runs the server-rendered frontend.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chefos/platform/internal/config"
	"github.com/chefos/platform/internal/logging"
	"github.com/chefos/platform/internal/web"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()
	if v := os.Getenv("FRONTEND_ADDR"); v != "" {
		*addr = v
	}

	cfg, err := config.Load()
	if err != nil {
		logging.NewDefault("frontend").Fatalf("load config: %v", err)
	}

	log := logging.New("frontend", cfg.LogLevel)
	if cfg.SessionSecret == "" {
		log.Fatalf("SESSION_SECRET is required")
	}

	server, err := web.New(web.Config{
		BackendURL:    cfg.BackendURL,
		SessionSecret: cfg.SessionSecret,
		SessionMaxAge: cfg.SessionMaxAge,
		SecureCookies: cfg.IsProduction(),
	}, log)
	if err != nil {
		log.Fatalf("build frontend: %v", err)
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("frontend listening on %s", *addr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	log.Infof("stopped")
}
