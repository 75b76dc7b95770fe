package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// Driver selects the repository flavor: "sql" runs on database/sql with the
// pgx stdlib driver, "pgx" runs on the native pgx connection pool.
type DatabaseConfig struct {
	Driver             string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// RedisConfig holds cache backend settings. An empty Addr disables the
// cache entirely; the service then always reads through to the database.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds JWT token issuance settings.
type AuthConfig struct {
	Secret      string
	TokenTTLMin int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Database    DatabaseConfig
	Redis       RedisConfig
	Auth        AuthConfig
	CacheTTLMin int
}

// CacheTTL returns the post-list cache time-to-live as a duration.
func (c *AppConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMin) * time.Minute
}

// TokenTTL returns the access-token lifetime as a duration.
func (c *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMin) * time.Minute
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "sql"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			TokenTTLMin: getEnvInt("JWT_TTL_MIN", 30),
		},
		CacheTTLMin: getEnvInt("CACHE_TTL_MIN", 5),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
