// Command prefetch generates every slide background once and writes the
// images to STORAGE_PATH, so a presentation can run from disk.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pitchdeck/internal/asset"
	"pitchdeck/internal/deck"
	"pitchdeck/internal/infra"
	"pitchdeck/internal/providers/image"
	"pitchdeck/internal/retry"
	"pitchdeck/internal/storage"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error().Err(err).Msg("prefetch: failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) error {
	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		return err
	}
	provider, err := image.New(ctx, cfg, &logger)
	if err != nil {
		return err
	}

	slides := deck.DefaultSlides()
	if cfg.DeckFile != "" {
		if slides, err = deck.LoadFile(cfg.DeckFile); err != nil {
			return err
		}
	}

	d, err := deck.New(slides, provider.Client, deck.Options{
		Policy: retry.Policy{
			MaxAttempts:  cfg.RetryMaxAttempts,
			InitialDelay: cfg.RetryInitialDelay,
		},
		Logger: &logger,
	})
	if err != nil {
		return err
	}
	defer d.Close()

	logger.Info().
		Str("provider", provider.Name).
		Int("slides", d.Len()).
		Int("concurrency", cfg.PrefetchWorkers).
		Str("storage", store.BasePath()).
		Msg("prefetch: starting")

	failed, err := prefetch(ctx, d, store, cfg.PrefetchWorkers, logger)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d slides failed", failed, d.Len())
	}
	logger.Info().Int("slides", d.Len()).Msg("prefetch: done")
	return nil
}

// prefetch activates each slide, waits for its fetch to settle and writes the
// loaded image. At most workers slides are in flight at once. It returns the
// number of slides that ended Failed.
func prefetch(ctx context.Context, d *deck.Deck, store *storage.FileStore, workers int, logger zerolog.Logger) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]asset.State, d.Len())
	for i := 0; i < d.Len(); i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slide, err := d.Slide(i)
			if err != nil {
				return err
			}
			c, err := d.Controller(i)
			if err != nil {
				return err
			}
			c.OnVisibilityChange(true)
			c.Wait()

			state := c.CurrentState()
			results[i] = state
			if state.Phase != asset.PhaseLoaded {
				logger.Warn().Str("slide", slide.ID).Str("kind", string(state.Kind)).Str("error", state.Description).Msg("prefetch: slide failed")
				return nil
			}
			key, err := store.Write(gctx, storage.SlideKey(slide.ID, state.Image.MIMEType), state.Image.Data)
			if err != nil {
				return fmt.Errorf("write %s: %w", slide.ID, err)
			}
			logger.Info().Str("slide", slide.ID).Str("key", key).Int("width", state.Image.Width).Int("height", state.Image.Height).Msg("prefetch: saved")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0, fmt.Errorf("interrupted: %w", err)
		}
		return 0, err
	}

	failed := 0
	for _, s := range results {
		if s.Phase != asset.PhaseLoaded {
			failed++
		}
	}
	return failed, nil
}
