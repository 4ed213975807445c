package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server struct {
		Port    string
		Env     string
		Timeout time.Duration
	}

	// Database configuration
	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
		MaxConns int
		Timeout  time.Duration
	}

	// JWT configuration
	JWT struct {
		Secret string
		Expiry time.Duration
	}

	// Security configuration
	Security struct {
		RateLimit      float64
		RateLimitBurst int
		AllowedOrigins []string
	}

	// Logging configuration
	Logging struct {
		Level  string
		Format string
	}

	// Chat configuration: context assembly and generation parameters
	Chat struct {
		// HistoryDepth is the number of prior messages per context window
		HistoryDepth int
		// SystemPrompt is the guidance turn prepended to every window;
		// empty means the built-in default
		SystemPrompt string
	}

	// OpenAI-compatible completion service configuration
	OpenAI struct {
		APIKey      string
		BaseURL     string
		Model       string
		Temperature float64
		MaxTokens   int
		Timeout     time.Duration
	}

	// Redis cache settings
	Redis struct {
		Enabled bool
		Addr    string
		TTL     time.Duration
	}

	// OpenAPI schema validation
	OpenAPI struct {
		SchemaPath string
	}
}

var (
	instance *Config
	once     sync.Once
)

// New creates the Config instance from environment variables.
// Uses singleton pattern to ensure only one instance exists.
func New() *Config {
	once.Do(func() {
		godotenv.Load()

		instance = &Config{}

		instance.Server.Port = getEnvString("PORT", "5555")
		instance.Server.Env = getEnvString("APP_ENV", "development")
		instance.Server.Timeout = getEnvDuration("SERVER_TIMEOUT", 30*time.Second)

		instance.Database.Host = getEnvString("DB_HOST", "localhost")
		instance.Database.Port = getEnvString("DB_PORT", "5432")
		instance.Database.User = getEnvString("DB_USER", "postgres")
		instance.Database.Password = getEnvString("DB_PASSWORD", "postgres")
		instance.Database.Name = getEnvString("DB_NAME", "chat-ecommerce")
		instance.Database.SSLMode = getEnvString("DB_SSL_MODE", "disable")
		instance.Database.MaxConns = getEnvInt("DB_MAX_CONNS", 20)
		instance.Database.Timeout = getEnvDuration("DB_TIMEOUT", 5*time.Second)

		instance.JWT.Secret = getEnvString("JWT_SECRET", "")
		instance.JWT.Expiry = getEnvDuration("JWT_EXPIRY", 24*time.Hour)

		instance.Security.RateLimit = float64(getEnvInt("RATE_LIMIT", 5))
		instance.Security.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", 10)
		instance.Security.AllowedOrigins = getEnvStringSlice("ALLOWED_ORIGINS", []string{"*"})

		instance.Logging.Level = getEnvString("LOG_LEVEL", "info")
		instance.Logging.Format = getEnvString("LOG_FORMAT", "json")

		instance.Chat.HistoryDepth = getEnvInt("CHAT_HISTORY_DEPTH", 3)
		instance.Chat.SystemPrompt = getEnvString("CHAT_SYSTEM_PROMPT", "")

		instance.OpenAI.APIKey = getEnvString("OPENAI_API_KEY", "")
		instance.OpenAI.BaseURL = getEnvString("OPENAI_BASE_URL", "https://api.openai.com/v1")
		instance.OpenAI.Model = getEnvString("OPENAI_MODEL", "gpt-3.5-turbo")
		instance.OpenAI.Temperature = getEnvFloat("OPENAI_TEMPERATURE", 0.7)
		instance.OpenAI.MaxTokens = getEnvInt("OPENAI_MAX_TOKENS", 150)
		instance.OpenAI.Timeout = getEnvDuration("OPENAI_TIMEOUT", 30*time.Second)

		instance.Redis.Enabled = getEnvBool("REDIS_ENABLED", false)
		instance.Redis.Addr = getEnvString("REDIS_URL", "localhost:6379")
		instance.Redis.TTL = getEnvDuration("REDIS_TTL", 5*time.Minute)

		instance.OpenAPI.SchemaPath = getEnvString("OPENAPI_SCHEMA_PATH", "")
	})

	return instance
}

// Get returns the singleton Config instance
func Get() *Config {
	if instance == nil {
		return New()
	}
	return instance
}

// Helper functions to read environment variables with default values

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
