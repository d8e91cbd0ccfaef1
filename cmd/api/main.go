package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/PabloGitu/bookmanagerrmh2/internal/config"
	"github.com/PabloGitu/bookmanagerrmh2/internal/logger"
	"github.com/PabloGitu/bookmanagerrmh2/internal/store"
	"github.com/PabloGitu/bookmanagerrmh2/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("loading configuration: %v", err)
	}
	logger.Setup(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("opening database: %v", err)
	}
	defer st.Close()
	logrus.WithField("driver", cfg.Database.Driver).Info("database connection OK")

	// The embedded database belongs to this process, so it migrates
	// itself. Postgres deployments run cmd/migrate.
	if cfg.Database.Driver == "sqlite" {
		if err := st.MigrateUp(); err != nil {
			logrus.Fatalf("applying migrations: %v", err)
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      web.New(cfg, st),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":    cfg.Server.Addr,
			"profile": cfg.Profile,
		}).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("graceful shutdown failed: %v", err)
	}
}
