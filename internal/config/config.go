package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port string

	// External services
	ThinkImmoURL string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string

	// Timeouts and limits
	FeedTimeout    time.Duration
	SearchTimeout  time.Duration
	RefineTimeout  time.Duration
	SearchPageSize int
	SearchRate     float64
	SearchBurst    int

	// Analysis cache
	CacheSize int
	CacheTTL  time.Duration
}

// Load reads the .env file (if present) and returns a populated Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file found, using system env vars")
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		ThinkImmoURL: getEnv("THINKIMMO_URL", "https://thinkimmo-api.mgraetz.de/thinkimmo"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		FeedTimeout:    getEnvDuration("FEED_TIMEOUT_MS", 15000),
		SearchTimeout:  getEnvDuration("SEARCH_TIMEOUT_MS", 20000),
		RefineTimeout:  getEnvDuration("REFINE_TIMEOUT_MS", 15000),
		SearchPageSize: getEnvInt("SEARCH_PAGE_SIZE", 20),
		SearchRate:     getEnvFloat("SEARCH_RATE_PER_SEC", 3),
		SearchBurst:    getEnvInt("SEARCH_BURST", 5),

		CacheSize: getEnvInt("ANALYSIS_CACHE_SIZE", 64),
		CacheTTL:  getEnvDuration("ANALYSIS_CACHE_TTL_MS", 600000),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[config] invalid int for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[config] invalid float for %s, using default %g", key, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMs)) * time.Millisecond
}
