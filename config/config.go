package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	AppName     = "ewaste-backend"
	EnvFileName = "config.env"
)

// Config holds everything the gateways and stores need. It is built once at
// startup and passed to constructors; nothing reads the environment after
// Load returns.
type Config struct {
	ListenAddr string

	// Vision annotation
	VisionProvider string // "google" or "stub"
	VisionAPIKey   string
	VisionBaseURL  string // overridable for tests

	// Geocoding
	GeocoderBaseURL string
	GeocoderAPIKey  string

	// Assistant
	GeminiAPIKey string

	// Storage
	DBPath     string
	StorageKey string // passphrase for encrypting customer contact fields
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// requiredEnvVars must be set for the server to start.
var requiredEnvVars = []string{"GEMINI_API_KEY", "EWASTE_STORAGE_KEY"}

// Load reads configuration from the environment. It reports every missing
// required variable at once rather than failing one at a time.
func Load() (Config, error) {
	var missing []string
	for _, v := range requiredEnvVars {
		if os.Getenv(v) == "" {
			missing = append(missing, v)
		}
	}

	cfg := Config{
		ListenAddr:      getenv("EWASTE_LISTEN_ADDR", ":8080"),
		VisionProvider:  getenv("VISION_PROVIDER", "google"),
		VisionAPIKey:    os.Getenv("VISION_API_KEY"),
		VisionBaseURL:   os.Getenv("VISION_BASE_URL"),
		GeocoderBaseURL: os.Getenv("GEOCODER_BASE_URL"),
		GeocoderAPIKey:  os.Getenv("GEOCODER_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DBPath:          getenv("EWASTE_DB_PATH", "ewaste.db"),
		StorageKey:      os.Getenv("EWASTE_STORAGE_KEY"),
	}

	if cfg.VisionProvider == "google" && cfg.VisionAPIKey == "" {
		missing = append(missing, "VISION_API_KEY")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
