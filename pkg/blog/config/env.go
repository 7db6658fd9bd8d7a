package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig mirrors the supported environment variables. Unset variables keep
// their zero value so only explicit settings override defaults.
type envConfig struct {
	Port               string        `env:"PORT"`
	Environment        string        `env:"ENVIRONMENT"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	DBSchema           string        `env:"DB_SCHEMA"`
	JWTSecret          string        `env:"JWT_SECRET"`
	RedisURL           string        `env:"REDIS_URL"`
	CommentRateLimit   int           `env:"COMMENT_RATE_LIMIT"`
	CommentRateWindow  time.Duration `env:"COMMENT_RATE_WINDOW"`
	KafkaBrokers       string        `env:"KAFKA_BROKERS"`
	KafkaTopic         string        `env:"KAFKA_TOPIC"`
	EnableEventLogging string        `env:"ENABLE_EVENT_LOGGING"`
	ExcerptLength      int           `env:"EXCERPT_LENGTH"`
	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS"`
}

// WithEnv applies environment variable overrides.
//
//	PORT, ENVIRONMENT            server port and runtime environment
//	DATABASE_URL                 "memory" (default) or "postgres[ql]://..."
//	DB_SCHEMA                    Postgres search_path
//	JWT_SECRET                   required in production
//	REDIS_URL                    shared comment rate limiting
//	COMMENT_RATE_LIMIT/_WINDOW   e.g. 10 and "1m"
//	KAFKA_BROKERS, KAFKA_TOPIC   comma-separated brokers; enables event publishing
//	ENABLE_EVENT_LOGGING         bool
//	EXCERPT_LENGTH               derived excerpt length
//	CORS_ALLOWED_ORIGINS         comma-separated origins
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var env envConfig
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		if env.Port != "" {
			c.Port = env.Port
		}
		if env.Environment != "" {
			c.Environment = env.Environment
		}
		if err := applyDatabaseURL(env.DatabaseURL, c); err != nil {
			return err
		}
		if env.DBSchema != "" {
			c.DBSchema = env.DBSchema
		}
		if env.JWTSecret != "" {
			c.JWTSecret = env.JWTSecret
		}
		if env.RedisURL != "" {
			if err := WithRedis(env.RedisURL)(c); err != nil {
				return err
			}
		}
		if env.CommentRateLimit != 0 {
			c.CommentRateLimit = env.CommentRateLimit
		}
		if env.CommentRateWindow != 0 {
			c.CommentRateWindow = env.CommentRateWindow
		}
		if env.KafkaTopic != "" {
			c.KafkaTopic = env.KafkaTopic
		}
		if brokers := splitList(env.KafkaBrokers); len(brokers) > 0 {
			c.KafkaBrokers = brokers
		}
		if env.EnableEventLogging != "" {
			enabled, err := strconv.ParseBool(env.EnableEventLogging)
			if err != nil {
				return fmt.Errorf("invalid boolean for ENABLE_EVENT_LOGGING: %w", err)
			}
			c.EnableEventLogging = enabled
		}
		if env.ExcerptLength != 0 {
			c.ExcerptLength = env.ExcerptLength
		}
		if origins := splitList(env.CORSAllowedOrigins); len(origins) > 0 {
			c.CORSAllowedOrigins = origins
		}
		return nil
	}
}

// applyDatabaseURL auto-detects the database type from the URL scheme
func applyDatabaseURL(dbURL string, c *ServerConfig) error {
	switch {
	case dbURL == "":
		return nil
	case dbURL == "memory":
		c.DatabaseType = "memory"
		c.DatabaseURL = ""
	case strings.HasPrefix(dbURL, "postgresql://"), strings.HasPrefix(dbURL, "postgres://"):
		c.DatabaseType = "postgres"
		c.DatabaseURL = dbURL
	default:
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", dbURL)
	}
	return nil
}
