package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StateBackendRedis    = "redis"
	StateBackendPostgres = "postgres"
)

type Config struct {
	ServiceName string
	ServerPort  string

	BackendBaseURL string
	BackendTimeout time.Duration

	StateBackend string
	StateTTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RabbitURL string

	TaxRate             float64
	SessionCookieSecure bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found, using environment")
	}

	return &Config{
		ServiceName:         getEnv("SERVICE_NAME", "aperture-web"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		BackendBaseURL:      getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
		BackendTimeout:      time.Duration(readInt("BACKEND_TIMEOUT_SECONDS", 10)) * time.Second,
		StateBackend:        getEnv("STATE_BACKEND", StateBackendRedis),
		StateTTL:            time.Duration(readInt("STATE_TTL_HOURS", 720)) * time.Hour,
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             readInt("REDIS_DB", 0),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "aperture_web"),
		DBSSLMode:           getEnv("DB_SSLMODE", "disable"),
		RabbitURL:           os.Getenv("RABBITMQ_URL"),
		TaxRate:             readFloat("TAX_RATE", 0.08),
		SessionCookieSecure: readBool("SESSION_COOKIE_SECURE", false),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
