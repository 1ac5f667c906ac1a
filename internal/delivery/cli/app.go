package cli

import (
	"context"
	"fmt"

	"github.com/safeeat/backend/config"
	"github.com/safeeat/backend/internal/domain"
	"github.com/safeeat/backend/internal/infrastructure/barcode"
	"github.com/safeeat/backend/internal/infrastructure/kvstore"
	"github.com/safeeat/backend/internal/infrastructure/openfoodfacts"
	"github.com/safeeat/backend/internal/usecase"
)

// App bundles the services the commands operate on
type App struct {
	Preferences *usecase.PreferenceService
	Scanner     *usecase.ScanService
	Camera      domain.BarcodeCapturer
	store       domain.KeyValueStore
}

// NewApp wires the services from configuration
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := kvstore.Open(ctx, kvstore.Config{
		Type:      cfg.Store.Type,
		Path:      cfg.Store.Path,
		RedisURL:  cfg.Store.RedisURL,
		KeyPrefix: cfg.Store.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}

	client := openfoodfacts.NewClient(openfoodfacts.Options{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		RequestsPerMinute: cfg.OpenFoodFacts.RequestsPerMinute,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
	})

	return NewAppFrom(store, client), nil
}

// NewAppFrom builds an App over an existing store and product client
func NewAppFrom(store domain.KeyValueStore, client domain.ProductClient) *App {
	prefs := usecase.NewPreferenceService(store, nil)
	return &App{
		Preferences: prefs,
		Scanner:     usecase.NewScanService(prefs, client, usecase.NewIngredientMatcher(false), nil),
		Camera:      &barcode.SampleCapturer{},
		store:       store,
	}
}

// Close releases the preference store
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
