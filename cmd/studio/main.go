package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"product-studio/internal/catalog"
	"product-studio/internal/events"
	"product-studio/internal/genclient"
	"product-studio/internal/http/handlers"
	"product-studio/internal/http/httpapi"
	"product-studio/internal/infra"
	"product-studio/internal/media"
	"product-studio/internal/progress"
	"product-studio/internal/storage"
	"product-studio/internal/ws"
)

func main() {
	// Load .env (optional)
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load preset catalog")
	}

	var store *storage.FileStore
	if cfg.ExportPath != "" {
		store, err = storage.NewFileStore(cfg.ExportPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare export directory")
		}
	}

	bus := events.NewBus()
	history := media.NewHistory(bus)
	estimator := progress.NewEstimator(cfg.ProgressTick, cfg.ProgressDisplayDelay, bus)
	client := genclient.NewClient(genclient.Options{
		BaseURL:        cfg.GenerationBaseURL,
		RequestTimeout: cfg.GenerationTimeout,
		Logger:         &logger,
	})

	app := handlers.NewApp(handlers.Options{
		Config:   cfg,
		Logger:   &logger,
		Catalog:  cat,
		Client:   client,
		History:  history,
		Progress: estimator,
		Bus:      bus,
		Store:    store,
	})
	hub := ws.NewHub(bus, &logger)
	router := httpapi.NewRouter(app, hub)

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("studio listening on :%s (generation backend %s)", cfg.Port, cfg.GenerationBaseURL)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
