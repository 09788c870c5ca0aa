package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"AUTH_MODE", "SERVER_PORT", "TOKEN_TTL_MIN", "SESSION_TTL_MIN", "STORE_DRIVER", "SEED_USERNAME", "AUDIT_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ModeToken, cfg.AuthMode)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "user", cfg.SeedUsername)
	assert.Equal(t, "auth_events", cfg.AuditTopic)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "session")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL_MIN", "15")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg := Load()

	assert.Equal(t, ModeSession, cfg.AuthMode)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a"}, CSV("a"))
	assert.Equal(t, []string{"a", "b"}, CSV("a, b,"))
}

func TestEnvIntDefault(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, EnvIntDefault("SOME_INT", 7))

	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, EnvIntDefault("SOME_INT", 7))
}
