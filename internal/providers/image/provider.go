// Package image selects the imagegen.Client implementation the process
// runs with.
package image

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"pitchdeck/internal/imagegen"
	"pitchdeck/internal/infra"
	"pitchdeck/internal/providers/gemini"
	"pitchdeck/internal/providers/genai"
)

// syntheticLatency keeps the Loading phase visible when running without
// credentials.
const syntheticLatency = 1500 * time.Millisecond

// Provider pairs a client with a display name for logs and health output.
type Provider struct {
	Name   string
	Model  string
	Client imagegen.Client
}

// New builds the provider selected by cfg.ImageProvider.
func New(ctx context.Context, cfg *infra.Config, logger *zerolog.Logger) (*Provider, error) {
	httpClient := &http.Client{Timeout: 90 * time.Second}

	switch cfg.ImageProvider {
	case infra.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:     cfg.GeminiAPIKey,
			Model:      cfg.GeminiModel,
			HTTPClient: httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		return &Provider{Name: cfg.ImageProvider, Model: client.Model(), Client: client}, nil
	case infra.ProviderGeminiREST:
		client, err := genai.NewClient(genai.Options{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			Model:      cfg.GeminiModel,
			HTTPClient: httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		return &Provider{Name: cfg.ImageProvider, Model: client.Model(), Client: client}, nil
	case infra.ProviderSynthetic:
		return &Provider{
			Name:   cfg.ImageProvider,
			Model:  "synthetic",
			Client: genai.NewSynthetic(syntheticLatency, logger),
		}, nil
	default:
		return nil, fmt.Errorf("image provider %q not configured", cfg.ImageProvider)
	}
}
