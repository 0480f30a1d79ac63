package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	Environment             string
	DatabaseURL             string
	DBPoolMin               int
	DBPoolMax               int
	UseMockData             bool
	RunMigrations           bool
	RunSeed                 bool
	SeedDemoData            bool
	LogLevel                string
	LogFormat               string
	JWTSecret               string
	AdminUsername           string
	AdminPassword           string
	ViewerUsername          string
	ViewerPassword          string
	TokenTTL                time.Duration
	DataEncryptionKey       string
	MaxBodyBytes            int64
	RateLimitPerMinute      int
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	ReportCacheTTL          time.Duration
	IdempotencyTTL          time.Duration
	PayrollScheduleInterval time.Duration
}

// Load reads the process environment, after merging a local .env file when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		Environment:             getEnv("APP_ENV", "development"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		DBPoolMin:               getEnvInt("DB_POOL_MIN", 1),
		DBPoolMax:               getEnvInt("DB_POOL_MAX", 5),
		UseMockData:             getEnvBool("USE_MOCK_DATA", true),
		RunMigrations:           getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                 getEnvBool("RUN_SEED", true),
		SeedDemoData:            getEnvBool("SEED_DEMO_DATA", false),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		AdminUsername:           getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:           getEnv("ADMIN_PASSWORD", ""),
		ViewerUsername:          getEnv("VIEWER_USERNAME", ""),
		ViewerPassword:          getEnv("VIEWER_PASSWORD", ""),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 12*time.Hour),
		DataEncryptionKey:       getEnv("DATA_ENCRYPTION_KEY", ""),
		MaxBodyBytes:            int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 600),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		RedisDB:                 getEnvInt("REDIS_DB", 0),
		ReportCacheTTL:          getEnvDuration("REPORT_CACHE_TTL", 30*time.Second),
		IdempotencyTTL:          getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		PayrollScheduleInterval: getEnvDuration("PAYROLL_SCHEDULE_INTERVAL", 0),
	}
}

// UseDatabase reports whether stores should be backed by PostgreSQL.
func (c Config) UseDatabase() bool {
	return !c.UseMockData && strings.TrimSpace(c.DatabaseURL) != ""
}

func (c Config) AuthEnabled() bool {
	return strings.TrimSpace(c.JWTSecret) != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvBool also accepts "yes" and "no", which older deployments used for USE_MOCK_DATA.
func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return fallback
	}
	switch value {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if !c.UseMockData && strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required when USE_MOCK_DATA is false")
	}
	if c.DBPoolMin < 0 || c.DBPoolMax <= 0 || c.DBPoolMin > c.DBPoolMax {
		return fmt.Errorf("DB_POOL_MIN must be between 0 and DB_POOL_MAX, and DB_POOL_MAX must be positive")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
	}
	if c.AuthEnabled() && strings.TrimSpace(c.AdminPassword) == "" {
		return fmt.Errorf("ADMIN_PASSWORD must be set when JWT_SECRET is configured")
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.ReportCacheTTL < 0 || c.IdempotencyTTL < 0 || c.PayrollScheduleInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
