package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"people-service/pkg/scheduler"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Avatar    AvatarConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Name   string `validate:"required"`
	Port   string `validate:"required,numeric"`
	Env    string `validate:"oneof=development staging production test"`
	LogDir string `validate:"required"`
}

type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     string `validate:"required,numeric"`
	User     string `validate:"required"`
	Password string
	DBName   string `validate:"required"`
	SSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

type RedisConfig struct {
	Host            string
	Port            string
	Password        string
	DB              int `validate:"gte=0"`
	CacheEnabled    bool
	CacheTTLSeconds int `validate:"gt=0"`
}

// AvatarConfig is read once at startup and never changes afterwards.
type AvatarConfig struct {
	BaseURL     string `validate:"required,url"`
	ImageSuffix string
	Set         string
	Size        string
	DefaultSeed string `validate:"required"`
}

type CORSConfig struct {
	AllowedOrigins   string // Comma separated
	AllowCredentials bool
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int `validate:"gt=0"`
	WindowSeconds int `validate:"gt=0"`
}

type JobsConfig struct {
	AvatarReconcileCron    string // Empty disables the scheduled reconcile
	AvatarReconcileOnStart bool
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:   getEnv("APP_NAME", "People Service"),
			Port:   getEnv("APP_PORT", "8080"),
			Env:    getEnv("APP_ENV", "development"),
			LogDir: getEnv("LOG_DIR", "logs"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "people"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:            getEnv("REDIS_HOST", "localhost"),
			Port:            getEnv("REDIS_PORT", "6379"),
			Password:        getEnv("REDIS_PASSWORD", ""),
			DB:              getEnvInt("REDIS_DB", 0),
			CacheEnabled:    getEnvBool("REDIS_CACHE_ENABLED", true),
			CacheTTLSeconds: getEnvInt("REDIS_CACHE_TTL_SECONDS", 60),
		},
		Avatar: AvatarConfig{
			BaseURL:     getEnv("AVATAR_BASE_URL", "https://robohash.org/"),
			// Set but empty drops the suffix or query parameter
			ImageSuffix: getEnvAllowEmpty("AVATAR_IMAGE_SUFFIX", ".png"),
			Set:         getEnvAllowEmpty("AVATAR_SET", "set2"),
			Size:        getEnvAllowEmpty("AVATAR_SIZE", "200x200"),
			DefaultSeed: getEnv("AVATAR_DEFAULT_SEED", "default"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvBool("RATE_LIMIT_ENABLED", false),
			MaxRequests:   getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
			WindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Jobs: JobsConfig{
			// Unset means the default schedule; empty or "off" disables it
			AvatarReconcileCron:    cronOrDisabled(getEnvAllowEmpty("AVATAR_RECONCILE_CRON", "0 3 * * *")),
			AvatarReconcileOnStart: getEnvBool("AVATAR_RECONCILE_ON_START", false),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks struct tags on every section.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// Wildcard origins cannot be combined with credentials
	if c.CORS.AllowCredentials && strings.Contains(c.CORS.AllowedOrigins, "*") {
		return fmt.Errorf("invalid configuration: CORS_ALLOWED_ORIGINS cannot contain '*' when credentials are allowed")
	}
	if c.Jobs.AvatarReconcileCron != "" {
		if err := scheduler.ValidateCronExpression(c.Jobs.AvatarReconcileCron); err != nil {
			return fmt.Errorf("invalid configuration: AVATAR_RECONCILE_CRON: %w", err)
		}
	}
	return nil
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAllowEmpty only falls back to defaultValue when key is unset.
func getEnvAllowEmpty(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func cronOrDisabled(expr string) string {
	switch strings.ToLower(strings.TrimSpace(expr)) {
	case "", "off", "disabled", "none":
		return ""
	}
	return expr
}
