package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Mode selects which authentication variant the process runs. Exactly one
// variant is active per deployment; the router wires a single guard for it.
type Mode string

const (
	ModeToken   Mode = "token"
	ModeSession Mode = "session"
)

type Config struct {
	ServerPort int
	LogLevel   string

	AuthMode Mode

	JWTSecret  []byte
	TokenTTL   time.Duration
	SessionTTL time.Duration

	StoreDriver string
	DatabaseURL string

	SeedName     string
	SeedUsername string
	SeedPassword string

	KafkaBrokers []string
	AuditTopic   string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		AuthMode: Mode(EnvDefault("AUTH_MODE", string(ModeToken))),

		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:   time.Duration(EnvIntDefault("TOKEN_TTL_MIN", 60)) * time.Minute,
		SessionTTL: time.Duration(EnvIntDefault("SESSION_TTL_MIN", 60)) * time.Minute,

		StoreDriver: EnvDefault("STORE_DRIVER", "memory"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SeedName:     EnvDefault("SEED_NAME", "Joske Vermeulen"),
		SeedUsername: EnvDefault("SEED_USERNAME", "user"),
		SeedPassword: EnvDefault("SEED_PASSWORD", "pass"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:   EnvDefault("AUDIT_TOPIC", "auth_events"),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "auth_events"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
