package config

import (
	"fmt"
	"strings"
	"time"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithJWTSecret sets the HS256 secret used to verify bearer tokens
func WithJWTSecret(secret string) Option {
	return func(c *ServerConfig) error {
		if secret == "" {
			return fmt.Errorf("jwt secret cannot be empty")
		}
		c.JWTSecret = secret
		return nil
	}
}

// WithRedis shares comment rate limits through Redis
func WithRedis(url string) Option {
	return func(c *ServerConfig) error {
		if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
			return fmt.Errorf("redis URL must start with redis:// or rediss://, got: %s", url)
		}
		c.RedisURL = url
		return nil
	}
}

// WithCommentRateLimit allows limit comments per actor per window
func WithCommentRateLimit(limit int, window time.Duration) Option {
	return func(c *ServerConfig) error {
		if limit <= 0 {
			return fmt.Errorf("comment rate limit must be positive, got: %d", limit)
		}
		if window <= 0 {
			return fmt.Errorf("comment rate window must be positive, got: %s", window)
		}
		c.CommentRateLimit = limit
		c.CommentRateWindow = window
		return nil
	}
}

// WithKafka publishes domain events to topic
func WithKafka(brokers []string, topic string) Option {
	return func(c *ServerConfig) error {
		cleaned := splitList(strings.Join(brokers, ","))
		if len(cleaned) == 0 {
			return fmt.Errorf("at least one kafka broker is required")
		}
		if topic == "" {
			return fmt.Errorf("kafka topic cannot be empty")
		}
		c.KafkaBrokers = cleaned
		c.KafkaTopic = topic
		return nil
	}
}

// WithEventLogging toggles the structured-log event sink
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// WithExcerptLength sets the derived excerpt length
func WithExcerptLength(n int) Option {
	return func(c *ServerConfig) error {
		if n <= 0 {
			return fmt.Errorf("excerpt length must be positive, got: %d", n)
		}
		c.ExcerptLength = n
		return nil
	}
}

// WithCORSOrigins sets the allowed CORS origins
func WithCORSOrigins(origins ...string) Option {
	return func(c *ServerConfig) error {
		c.CORSAllowedOrigins = splitList(strings.Join(origins, ","))
		return nil
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
