package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "JWT_TTL", "SEED_DATA", "KAFKA_BROKERS", "RABBITMQ_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "cafe.db", cfg.DBDSN)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.SeedData)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.RabbitURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("SEED_DATA", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RATE_LIMIT_RPS", "5.5")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.SeedData)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5.5, cfg.RateLimitRPS)
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(Config{DBDriver: "oracle"})
	require.Error(t, err)
}

func TestInitDBSqliteMemory(t *testing.T) {
	db, err := InitDB(Config{DBDriver: "sqlite", DBDSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("SELECT 1").Error)
}
