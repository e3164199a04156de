package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Image provider identifiers accepted by IMAGE_PROVIDER.
const (
	ProviderGemini     = "gemini"
	ProviderGeminiREST = "gemini-rest"
	ProviderSynthetic  = "synthetic"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	ImageProvider      string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	RetryMaxAttempts   int
	RetryInitialDelay  time.Duration
	DeckFile           string
	PrefetchAhead      int
	PrefetchWorkers    int
	StoragePath        string
	CORSAllowedOrigins []string
	RetryLimitPerMin   int
	TrustProxyHeaders  bool
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
// A .env or .env.local file in the working directory is read first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		ImageProvider:      strings.ToLower(strings.TrimSpace(os.Getenv("IMAGE_PROVIDER"))),
		GeminiAPIKey:       strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		RetryMaxAttempts:   getEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay:  time.Millisecond * time.Duration(getEnvInt("RETRY_INITIAL_DELAY_MS", 2000)),
		DeckFile:           os.Getenv("DECK_FILE"),
		PrefetchAhead:      getEnvInt("DECK_PREFETCH_AHEAD", 1),
		PrefetchWorkers:    getEnvInt("PREFETCH_CONCURRENCY", 2),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		RetryLimitPerMin:   getEnvInt("RETRY_RATE_LIMIT_PER_MINUTE", 10),
		TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.ImageProvider == "" {
		cfg.ImageProvider = ProviderSynthetic
		if cfg.GeminiAPIKey != "" {
			cfg.ImageProvider = ProviderGemini
		}
	}

	switch cfg.ImageProvider {
	case ProviderGemini, ProviderGeminiREST:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for IMAGE_PROVIDER=%s", cfg.ImageProvider)
		}
	case ProviderSynthetic:
	default:
		return nil, fmt.Errorf("unsupported IMAGE_PROVIDER %q", cfg.ImageProvider)
	}

	if cfg.RetryMaxAttempts < 1 {
		return nil, fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", cfg.RetryMaxAttempts)
	}
	if cfg.RetryInitialDelay < 0 {
		return nil, fmt.Errorf("RETRY_INITIAL_DELAY_MS must not be negative")
	}
	if cfg.PrefetchAhead < 0 {
		cfg.PrefetchAhead = 0
	}
	if cfg.PrefetchWorkers <= 0 {
		cfg.PrefetchWorkers = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
