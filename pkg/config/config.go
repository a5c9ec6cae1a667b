// Файл: pkg/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// APIConfig - всё, что нужно клиенту REST API. Читается один раз при старте.
type APIConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	MaxRedirects  int
	MaxRetries    int
	RetryInterval time.Duration
	Envelope      string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

type ServerConfig struct {
	Port              string
	AggregateCacheTTL time.Duration
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
}

type LogConfig struct {
	Level   string
	Outputs []string
}

type Config struct {
	API      APIConfig
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env файл не найден или не удалось его загрузить.")
	}

	return &Config{
		API: APIConfig{
			BaseURL:       getEnv("API_BASE_URL", "http://localhost:8080/api/v1"),
			Token:         getEnv("API_TOKEN", ""),
			Timeout:       getEnvDuration("API_TIMEOUT", 30*time.Second),
			MaxRedirects:  getEnvInt("API_MAX_REDIRECTS", 3),
			MaxRetries:    getEnvInt("API_MAX_RETRIES", 2),
			RetryInterval: getEnvDuration("API_RETRY_INTERVAL", 200*time.Millisecond),
			Envelope:      getEnv("API_ENVELOPE", "wrapped"),
		},
		Server: ServerConfig{
			Port:              getEnv("SERVER_PORT", "8080"),
			AggregateCacheTTL: getEnvDuration("AGGREGATE_CACHE_TTL", 30*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET_KEY", ""),
			AccessTokenTTL: getEnvDuration("JWT_ACCESS_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:   getEnv("LOG_LEVEL", "debug"),
			Outputs: splitList(getEnv("LOG_OUTPUT", "stdout")),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Предупреждение: %s=%q не число, используется %d", key, value, fallback)
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Предупреждение: %s=%q не длительность, используется %s", key, value, fallback)
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
