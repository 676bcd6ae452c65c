package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bot backend.
type Config struct {
	App          AppConfig
	Bot          BotConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Texts        TextsConfig
	Notification NotificationConfig
}

// AppConfig controls process level behavior and the ops HTTP listener.
type AppConfig struct {
	Name    string
	Env     string
	Version string
	OpsHost string
	OpsPort string
}

// BotConfig holds Telegram transport values.
type BotConfig struct {
	Token              string
	ParseMode          string
	PollTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values for the conversation-state store.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	StateTTLMinutes int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// TextsConfig points at the localized text bundles.
type TextsConfig struct {
	Dir  string
	Lang string
}

// NotificationConfig holds the stub notification endpoint.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "registration-bot"),
			Env:     env,
			Version: getEnv("APP_VERSION", "dev"),
			OpsHost: getEnv("OPS_HOST", "0.0.0.0"),
			OpsPort: getEnv("OPS_PORT", "8080"),
		},
		Bot: BotConfig{
			Token:              token,
			ParseMode:          getEnv("BOT_PARSE_MODE", "HTML"),
			PollTimeoutSeconds: getEnvAsInt("BOT_POLL_TIMEOUT_SECONDS", 10),
		},
		Postgres: PostgresConfig{
			DSN:            dsn,
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:            getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password:        os.Getenv("REDIS_PASSWORD"),
			DB:              redisDB,
			StateTTLMinutes: getEnvAsInt("REDIS_STATE_TTL_MINUTES", 60),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: env != "production",
		},
		Texts: TextsConfig{
			Dir:  getEnv("TEXTS_DIR", "texts"),
			Lang: getEnv("TEXTS_LANG", "en"),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// OpsAddr returns the ops HTTP bind address.
func (a AppConfig) OpsAddr() string {
	return fmt.Sprintf("%s:%s", a.OpsHost, a.OpsPort)
}

// PollTimeout returns the long-poll timeout duration.
func (b BotConfig) PollTimeout() time.Duration {
	if b.PollTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(b.PollTimeoutSeconds) * time.Second
}

// StateTTL returns how long conversation state is retained.
func (r RedisConfig) StateTTL() time.Duration {
	if r.StateTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(r.StateTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
