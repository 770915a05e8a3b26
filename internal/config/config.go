package config

import (
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the external settings of the server. Database values mirror
// the usual DB_* environment variables; a .env file in the working directory
// is loaded first if present.
type Config struct {
	DBUser string
	DBPass string
	DBHost string
	DBPort string
	DBName string

	HTTPAddr     string
	KafkaBrokers []string
}

// Load reads configuration from .env (if present) and the environment.
func Load() Config {
	// Missing .env is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := Config{
		DBUser:   getEnv("DB_USER", "ecommerce"),
		DBPass:   getEnv("DB_PASS", "ecommerce"),
		DBHost:   getEnv("DB_HOST", "127.0.0.1"),
		DBPort:   getEnv("DB_PORT", "5432"),
		DBName:   getEnv("DB_NAME", "ecommerce_db"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

// DSN renders the lib/pq connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
