package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pitchdeck/internal/deck"
	"pitchdeck/internal/http/handlers"
	httpapi "pitchdeck/internal/http/httpapi"
	"pitchdeck/internal/infra"
	"pitchdeck/internal/providers/image"
	"pitchdeck/internal/retry"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := image.New(ctx, cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure image provider")
	}

	slides := deck.DefaultSlides()
	if cfg.DeckFile != "" {
		slides, err = deck.LoadFile(cfg.DeckFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.DeckFile).Msg("failed to load deck")
		}
	}

	d, err := deck.New(slides, provider.Client, deck.Options{
		Policy: retry.Policy{
			MaxAttempts:  cfg.RetryMaxAttempts,
			InitialDelay: cfg.RetryInitialDelay,
		},
		Logger:        &logger,
		PrefetchAhead: cfg.PrefetchAhead,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build deck")
	}
	defer d.Close()

	if err := d.Show(0); err != nil {
		logger.Fatal().Err(err).Msg("failed to show first slide")
	}

	app := handlers.NewApp(d, provider.Name, provider.Model, logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RetryLimitPerMin:   cfg.RetryLimitPerMin,
		TrustProxyHeaders:  cfg.TrustProxyHeaders,
	})
	server := infra.NewHTTPServer(cfg, router)

	logger.Info().
		Str("provider", provider.Name).
		Str("model", provider.Model).
		Int("slides", d.Len()).
		Msg("deck ready")
	if err := server.Run(ctx, logger); err != nil {
		logger.Error().Err(err).Msg("http server failed")
		return
	}
	logger.Info().Msg("server stopped")
}
