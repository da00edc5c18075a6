package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const insecureJWTSecret = "change-me-in-production"

// Config is the service configuration read from the environment
type Config struct {
	Port                string        `validate:"required,numeric"`
	GinMode             string        `validate:"oneof=debug release test"`
	DataDir             string        `validate:"required"`
	DatabaseURL         string        `validate:"omitempty,url"`
	ModelName           string        `validate:"required"`
	JWTSecret           string        `validate:"required,min=16"`
	StripeSecretKey     string        `validate:"omitempty,startswith=sk_"`
	StripeWebhookSecret string        `validate:"omitempty,startswith=whsec_"`
	FrontendURL         string        `validate:"required,url"`
	RedisAddr           string        `validate:"omitempty,hostname_port"`
	RedisPassword       string        `validate:"-"`
	RedisDB             int           `validate:"gte=0,lte=15"`
	RateLimitPerMin     int           `validate:"gt=0"`
	AllowedOrigins      []string      `validate:"dive,url"`
	RetentionDays       int           `validate:"gte=0"`
	RequestTimeout      time.Duration `validate:"gt=0"`
	MaxBodyBytes        int64         `validate:"gt=0"`
	EnableHSTS          bool
	LogLevel            slog.Level
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		GinMode:             getEnvOrDefault("GIN_MODE", "release"),
		DataDir:             getEnvOrDefault("DATA_DIR", "./data"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ModelName:           getEnvOrDefault("MODEL_NAME", "scoring_model"),
		JWTSecret:           getEnvOrDefault("JWT_SECRET", insecureJWTSecret),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FrontendURL:         strings.TrimRight(getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"), "/"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		AllowedOrigins:      splitList(getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		EnableHSTS:          os.Getenv("ENABLE_HSTS") == "true",
	}

	var err error
	if cfg.RedisDB, err = getIntOrDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMin, err = getIntOrDefault("RATE_LIMIT_PER_MIN", 30); err != nil {
		return nil, err
	}
	if cfg.RetentionDays, err = getIntOrDefault("RETENTION_DAYS", 90); err != nil {
		return nil, err
	}
	maxBody, err := getIntOrDefault("MAX_BODY_BYTES", 64*1024)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if cfg.RequestTimeout, err = time.ParseDuration(getEnvOrDefault("REQUEST_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field formats and ranges
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UsesInsecureSecret reports whether JWT_SECRET was left at its default
func (c *Config) UsesInsecureSecret() bool {
	return c.JWTSecret == insecureJWTSecret
}

// StripeEnabled reports whether real checkout sessions can be created
func (c *Config) StripeEnabled() bool {
	return c.StripeSecretKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
