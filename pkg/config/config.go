package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	AgentBearerToken string

	// AI provider selection: "gemini", "ollama" or "auto"
	AIProvider    string
	GeminiAPIKey  string
	OllamaBaseURL string
	OllamaModel   string
	AITimeout     time.Duration

	// DMS scraper
	DMSLoginURL     string
	DMSUsername     string
	DMSPassword     string
	DMSInventoryURL string
	ChromePath      string
	ScraperHeadless bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	aiTimeout := 12 * time.Second
	if t := os.Getenv("AI_TIMEOUT"); t != "" {
		if parsed, err := time.ParseDuration(t); err == nil {
			aiTimeout = parsed
		}
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		AgentBearerToken: getEnv("AGENT_BEARER_TOKEN", ""),

		AIProvider:    getEnv("AI_PROVIDER", "auto"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL: getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:   getEnv("OLLAMA_MODEL", ""),
		AITimeout:     aiTimeout,

		DMSLoginURL:     getEnv("DMS_LOGIN_URL", ""),
		DMSUsername:     getEnv("DMS_USERNAME", ""),
		DMSPassword:     getEnv("DMS_PASSWORD", ""),
		DMSInventoryURL: getEnv("DMS_INVENTORY_URL", ""),
		ChromePath:      getEnv("CHROME_PATH", ""),
		ScraperHeadless: getEnv("SCRAPER_HEADLESS", "true") != "false",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
