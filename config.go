package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yashrajoria/shop-backend/database"
	aws_pkg "github.com/yashrajoria/shop-backend/pkg/aws"
)

// Config holds all configuration for the shop API.
type Config struct {
	Env         string
	Port        string
	ServiceName string

	Postgres database.PostgresConfig
	RedisURL string
	MongoURI string
	MongoDB  string

	FavouritesTable string
	CatalogURL      string
	CatalogTimeout  time.Duration
	CatalogCacheTTL time.Duration
	CartTTL         time.Duration

	JWTSecret    string
	TokenTTL     time.Duration
	SecureCookie bool

	// SNS topic for order and coupon events; empty disables publishing
	EventsTopicARN string

	MetricsEnabled   bool
	MetricsNamespace string
	CloudWatchLogs   bool
	LogGroup         string

	AllowedOrigins  []string
	RequestTimeout  time.Duration
	AuthRatePerMin  int
	AuthRateBurst   int
	ShutdownTimeout time.Duration
}

// secretKeys are the settings a Secrets Manager bundle may override.
var secretKeys = []string{
	"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT",
	"REDIS_URL", "MONGO_URI", "JWT_SECRET",
}

// LoadConfig reads configuration from the environment (and a .env file when
// present) with an optional Secrets Manager override.
func LoadConfig(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	env := map[string]string{}
	for _, key := range secretKeys {
		env[key] = os.Getenv(key)
	}

	// Override credentials from Secrets Manager when running on AWS
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config for secrets: %w", err)
		}
		secrets, err := aws_pkg.GetSecretMap(ctx, aws_pkg.NewSecretsClient(awsCfg), getEnv("SECRETS_NAME", "shop/app"))
		if err != nil {
			return nil, err
		}
		applySecrets(env, secrets)
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "production"),
		Port:        getEnv("PORT", "8080"),
		ServiceName: getEnv("SERVICE_NAME", "shop-api"),
		Postgres: database.PostgresConfig{
			Host:     env["POSTGRES_HOST"],
			Port:     orDefault(env["POSTGRES_PORT"], "5432"),
			User:     env["POSTGRES_USER"],
			Password: env["POSTGRES_PASSWORD"],
			DB:       env["POSTGRES_DB"],
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		RedisURL:         orDefault(env["REDIS_URL"], "redis://localhost:6379/0"),
		MongoURI:         orDefault(env["MONGO_URI"], "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "shop"),
		FavouritesTable:  getEnv("FAVOURITES_TABLE", "shop-favourites"),
		CatalogURL:       getEnv("CATALOG_URL", "https://fakestoreapi.com"),
		CatalogTimeout:   getDuration("CATALOG_TIMEOUT", 10*time.Second),
		CatalogCacheTTL:  getDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		CartTTL:          getDuration("CART_TTL", 30*24*time.Hour),
		JWTSecret:        env["JWT_SECRET"],
		TokenTTL:         getDuration("TOKEN_TTL", 24*time.Hour),
		SecureCookie:     getBool("SECURE_COOKIE", true),
		EventsTopicARN:   os.Getenv("EVENTS_SNS_TOPIC_ARN"),
		MetricsEnabled:   getBool("CLOUDWATCH_METRICS_ENABLED", false),
		MetricsNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Shop"),
		CloudWatchLogs:   getBool("CLOUDWATCH_LOGS_ENABLED", false),
		LogGroup:         getEnv("CLOUDWATCH_LOG_GROUP", "/shop/services"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		RequestTimeout:   getDuration("REQUEST_TIMEOUT", 30*time.Second),
		AuthRatePerMin:   getInt("AUTH_RATE_PER_MIN", 20),
		AuthRateBurst:    getInt("AUTH_RATE_BURST", 5),
		ShutdownTimeout:  getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.DB == "" || cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// applySecrets copies non-empty secret values over the known keys.
func applySecrets(env, secrets map[string]string) {
	for _, key := range secretKeys {
		if v, ok := secrets[key]; ok && v != "" {
			env[key] = v
		}
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
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
