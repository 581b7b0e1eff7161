package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecovolt/ewaste-backend/config"
	"github.com/ecovolt/ewaste-backend/internal/assist"
	"github.com/ecovolt/ewaste-backend/internal/geo"
	"github.com/ecovolt/ewaste-backend/internal/httpapi"
	"github.com/ecovolt/ewaste-backend/internal/pickup"
	"github.com/ecovolt/ewaste-backend/internal/scan"
	"github.com/ecovolt/ewaste-backend/internal/storage"
	"github.com/ecovolt/ewaste-backend/internal/vision"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// stubAnnotatorDelay simulates classification latency in stub mode so the
// dashboard's loading states stay exercised in development.
const stubAnnotatorDelay = 1200 * time.Millisecond

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	// Context that cancels on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	encryptionKey := storage.DeriveKey(cfg.StorageKey)
	store, err := storage.NewSQLiteStore(cfg.DBPath, encryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("store initialized")

	var annotator vision.Annotator
	switch cfg.VisionProvider {
	case "stub":
		annotator = &vision.StubAnnotator{Delay: stubAnnotatorDelay}
		log.Info().Msg("using stub annotator")
	default:
		annotator = vision.NewGoogleAnnotator(vision.GoogleOpts{
			BaseURL: cfg.VisionBaseURL,
			APIKey:  cfg.VisionAPIKey,
		})
		log.Info().Msg("using Google Vision annotator")
	}
	scanner := scan.NewService(annotator)

	geocoder := geo.NewClient(geo.ClientOpts{
		BaseURL: cfg.GeocoderBaseURL,
		APIKey:  cfg.GeocoderAPIKey,
	})
	resolver := pickup.NewResolver(geocoder)

	assistant, err := assist.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize assistant")
	}

	router := buildRouter(
		httpapi.ScanDeps{Scanner: scanner, Store: store},
		httpapi.PickupDeps{Store: store, Resolver: resolver},
		httpapi.AssistDeps{Assistant: assistant},
	)
	srv := &http.Server{Addr: cfg.ListenAddr, Handler: router}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
