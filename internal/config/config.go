package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBConnectionLimit int

	// Redis
	RedisURL string

	// Sessions
	SessionSecret string

	// Completion service
	GeminiAPIKey     string
	GeminiModel      string
	SystemPrompt     string
	AIRequestTimeout time.Duration

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		Env:               getEnvOrDefault("ENV", "development"),
		DBHost:            mustGetEnv("DB_HOST"),
		DBPort:            getEnvOrDefault("DB_PORT", "5432"),
		DBUser:            mustGetEnv("DB_USER"),
		DBPassword:        mustGetEnv("DB_PASSWORD"),
		DBName:            mustGetEnv("DB_NAME"),
		DBConnectionLimit: getEnvAsIntOrDefault("DB_CONNECTION_LIMIT", 10),
		RedisURL:          mustGetEnv("REDIS_URL"),
		SessionSecret:     mustGetEnv("SESSION_SECRET"),
		GeminiAPIKey:      mustGetEnv("GEMINI_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		SystemPrompt:      os.Getenv("AI_SYSTEM_PROMPT"),
		AIRequestTimeout:  time.Duration(getEnvAsIntOrDefault("AI_REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
		FrontendURL:       getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

// DatabaseURL assembles a postgres connection URL from the discrete DB_*
// variables.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	return u.String()
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
