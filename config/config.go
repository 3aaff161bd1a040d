package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	// Appwrite (remote identity/document provider)
	AppwriteEndpoint         string
	AppwriteProjectID        string
	AppwriteAPIKey           string
	AppwriteDatabaseID       string
	AppwriteUserCollectionID string
	ProviderTimeoutSeconds   int
	// API tokens issued to the mobile client
	JWTSecret       string
	TokenTTLMinutes int
	// Frontend (deep links for password recovery emails)
	FrontendURL string
	// Redis Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	// Onboarding wizard
	WizardTTLMinutes int
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		// Trim trailing slash to avoid double slashes (e.g. .io//account)
		AppwriteEndpoint:         strings.TrimRight(getEnv("APPWRITE_ENDPOINT", "https://cloud.appwrite.io/v1"), "/"),
		AppwriteProjectID:        getEnv("APPWRITE_PROJECT_ID", ""),
		AppwriteAPIKey:           getEnv("APPWRITE_API_KEY", ""),
		AppwriteDatabaseID:       getEnv("APPWRITE_DATABASE_ID", ""),
		AppwriteUserCollectionID: getEnv("APPWRITE_USER_COLLECTION_ID", ""),
		ProviderTimeoutSeconds:   getEnvInt("PROVIDER_TIMEOUT_SECONDS", 10),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60*24*7), // provider sessions outlive ours; rotate weekly

		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "https://app.elitefit.app"), "/"),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		WizardTTLMinutes: getEnvInt("WIZARD_TTL_MINUTES", 30),
	}

	// Basic validation to avoid confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.AppwriteProjectID == "" {
		log.Println("WARNING: APPWRITE_PROJECT_ID is missing. Provider calls will be rejected.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Issued tokens will not survive restarts.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
