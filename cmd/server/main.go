package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safeeat/backend/config"
	httpDelivery "github.com/safeeat/backend/internal/delivery/http"
	"github.com/safeeat/backend/internal/infrastructure/kvstore"
	"github.com/safeeat/backend/internal/infrastructure/metrics"
	"github.com/safeeat/backend/internal/infrastructure/openfoodfacts"
	"github.com/safeeat/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("SAFEEAT_CONFIG"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := config.ConfigureLogging(cfg, os.Stdout); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	logrus.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"store":       cfg.Store.Type,
	}).Info("Starting SafeEat backend v1.0.0")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	store, err := kvstore.Open(ctx, kvstore.Config{
		Type:      cfg.Store.Type,
		Path:      cfg.Store.Path,
		RedisURL:  cfg.Store.RedisURL,
		KeyPrefix: cfg.Store.KeyPrefix,
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open preference store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logrus.WithError(err).Warn("Closing preference store")
		}
	}()

	m := metrics.New()

	client := openfoodfacts.NewClient(openfoodfacts.Options{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		RequestsPerMinute: cfg.OpenFoodFacts.RequestsPerMinute,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
	})

	debug := cfg.Server.Environment == "development"
	if debug {
		client.SetDebug(true)
		logrus.Info("Open Food Facts client debug mode enabled")
	}

	// Initialize usecase layer
	preferences := usecase.NewPreferenceService(store, m)
	scanner := usecase.NewScanService(preferences, client, usecase.NewIngredientMatcher(debug), m)

	handler := httpDelivery.NewHandler(preferences, scanner)
	router := httpDelivery.SetupRouter(cfg, handler, m)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}
