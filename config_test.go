package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDatabaseEnv(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.local")
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "shop")
	t.Setenv("AWS_USE_SECRETS", "false")
}

func TestLoadConfigDefaults(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("CART_TTL", "48h")
	t.Setenv("AUTH_RATE_PER_MIN", "not-a-number")
	t.Setenv("CLOUDWATCH_METRICS_ENABLED", "true")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.Postgres.Port)
	assert.Equal(t, "db.local", cfg.Postgres.Host)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 48*time.Hour, cfg.CartTTL)
	assert.Equal(t, 10*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 20, cfg.AuthRatePerMin)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.SecureCookie)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(context.Background())
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadConfigRequiresDatabase(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("POSTGRES_PASSWORD", "")

	_, err := LoadConfig(context.Background())
	assert.EqualError(t, err, "database config incomplete")
}

func TestApplySecrets(t *testing.T) {
	env := map[string]string{"POSTGRES_PASSWORD": "local", "JWT_SECRET": "local-secret"}
	applySecrets(env, map[string]string{
		"POSTGRES_PASSWORD": "from-aws",
		"JWT_SECRET":        "",
		"UNRELATED":         "ignored",
	})

	assert.Equal(t, "from-aws", env["POSTGRES_PASSWORD"])
	assert.Equal(t, "local-secret", env["JWT_SECRET"])
	assert.NotContains(t, env, "UNRELATED")
}
