package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.True(t, cfg.Store.SeedDefaults)
	assert.Equal(t, 0.10, cfg.Order.TaxRate)
	assert.Equal(t, 5.00, cfg.Order.DeliveryFee)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Nil(t, cfg.Kafka.Brokers)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "SERVER_PORT: 9090\nSTORE_DRIVER: redis\nORDER_TAX_RATE: 0.21\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, 0.21, cfg.Order.TaxRate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_RejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_TTL", "forever")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RejectsNegativeTax(t *testing.T) {
	t.Setenv("ORDER_TAX_RATE", "-0.5")

	_, err := Load("")
	assert.Error(t, err)
}
