package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory   = "memory"
	SessionStorePostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	AI        AIConfig
	Storage   StorageConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type AIConfig struct {
	GeminiAPIKey      string
	GeminiModel       string
	GeminiAPIVersion  string
	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string
	Timeout           time.Duration
	MaxAttempts       int
}

type StorageConfig struct {
	MaxFileSize int64
}

type SessionConfig struct {
	Store string
}

type RateLimitConfig struct {
	Max        int
	Expiration time.Duration
}

// Load reads .env (when present) and the process environment. It never fails;
// call Validate before using the result.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using environment and default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "resumai"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		AI: AIConfig{
			GeminiAPIKey:      getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
			GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			GeminiAPIVersion:  getEnv("GEMINI_API_VERSION", "v1"),
			OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterModel:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
			OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			Timeout:           getEnvAsDuration("AI_TIMEOUT", "60s"),
			MaxAttempts:       clampAttempts(getEnvAsInt("AI_MAX_ATTEMPTS", 2)),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 5*1024*1024),
		},
		Session: SessionConfig{
			Store: strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		},
		RateLimit: RateLimitConfig{
			Max:        getEnvAsInt("RATE_LIMIT_MAX", 30),
			Expiration: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
	}
}

// Validate checks the required fields and reports every missing one at once.
func (c *Config) Validate() error {
	var missing []string

	if strings.TrimSpace(c.AI.GeminiAPIKey) == "" {
		missing = append(missing, "GOOGLE_API_KEY (or GEMINI_API_KEY)")
	}

	switch c.Session.Store {
	case SessionStoreMemory:
	case SessionStorePostgres:
		if c.Database.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if c.Database.User == "" {
			missing = append(missing, "DB_USER")
		}
		if c.Database.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: expected %q or %q",
			c.Session.Store, SessionStoreMemory, SessionStorePostgres)
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("invalid AI_TIMEOUT: must be positive")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// one retry at most
func clampAttempts(n int) int {
	if n < 1 {
		return 1
	}
	if n > 2 {
		return 2
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
