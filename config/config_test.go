package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "APP_PORT=9000\n" +
		"APP_ENV=production\n" +
		"DB_HOST=db.internal\n" +
		"DB_NAME=clinic\n" +
		"JWT_SECRET=top-secret\n" +
		"JWT_ACCESS_EXPIRY=30m\n" +
		"BCRYPT_COST=12\n" +
		"ADMIN_API_KEY=admin-key\n" +
		"KAFKA_BROKERS=k1:9092, k2:9092\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "clinic", cfg.DB.Name)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "admin-key", cfg.Auth.AdminAPIKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "clinic.accounts", cfg.Kafka.Topic)
}

func TestLoadConfig_MissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("APP_PORT", "7000")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.App.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Empty(t, cfg.Kafka.Brokers)
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
