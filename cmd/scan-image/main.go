// Command scan-image runs a local image file through the inference pipeline
// without starting the server. Useful for eyeballing classifier behavior on
// real photos.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/ecovolt/ewaste-backend/config"
	"github.com/ecovolt/ewaste-backend/internal/scan"
	"github.com/ecovolt/ewaste-backend/internal/vision"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	useStub := flag.Bool("stub", false, "use the stub annotator instead of Google Vision")
	flag.Parse()

	path := flag.Arg(0)
	if path == "" {
		log.Fatal().Msg("usage: scan-image [-stub] <image file>")
	}

	imageData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read image")
	}

	var annotator vision.Annotator
	if *useStub {
		annotator = &vision.StubAnnotator{}
	} else {
		config.LoadEnvFile()
		apiKey := os.Getenv("VISION_API_KEY")
		if apiKey == "" {
			log.Fatal().Msg("VISION_API_KEY is not set (or pass -stub)")
		}
		annotator = vision.NewGoogleAnnotator(vision.GoogleOpts{APIKey: apiKey})
	}

	result, err := scan.NewService(annotator).Scan(context.Background(), imageData)
	if err != nil {
		log.Fatal().Err(err).Msg("scan failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}
}
