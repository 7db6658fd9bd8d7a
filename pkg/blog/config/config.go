package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/oilmonegov/Blog/pkg/blog"
	"github.com/oilmonegov/Blog/pkg/blog/events"
	"github.com/oilmonegov/Blog/pkg/blog/ratelimit"
	"github.com/oilmonegov/Blog/pkg/blog/repo/memory"
	repopg "github.com/oilmonegov/Blog/pkg/blog/repo/postgres"
)

// DevJWTSecret signs tokens outside production when JWT_SECRET is unset.
const DevJWTSecret = "blog-development-secret"

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = DevJWTSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:               "8080",
		Environment:        "development",
		DatabaseType:       "memory",
		DBSchema:           "blog",
		CommentRateLimit:   blog.DefaultCommentRateLimit,
		CommentRateWindow:  ratelimit.DefaultWindow,
		KafkaTopic:         "blog-events",
		EnableEventLogging: true,
		ExcerptLength:      blog.DefaultExcerptLength,
	}
}

// ServerConfig represents server configuration for the blog service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (default: blog)

	// HS256 secret for bearer tokens
	JWTSecret string

	// Comment throttling; Redis is shared across instances when set
	RedisURL          string
	CommentRateLimit  int
	CommentRateWindow time.Duration

	// Event publishing
	KafkaBrokers       []string
	KafkaTopic         string
	EnableEventLogging bool

	ExcerptLength      int
	CORSAllowedOrigins []string
}

// IsProduction reports whether the server runs in production mode.
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required in production")
	}

	if c.CommentRateLimit <= 0 {
		return errors.New("comment_rate_limit must be positive")
	}
	if c.CommentRateWindow <= 0 {
		return errors.New("comment_rate_window must be positive")
	}

	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("kafka_topic is required when kafka brokers are set")
	}

	return nil
}

// BuildService creates a Service instance from the server configuration. The
// returned cleanup releases pools and writers and is safe to call once the
// server has stopped.
func (c *ServerConfig) BuildService(ctx context.Context, logger *slog.Logger) (blog.Service, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	options := []blog.Option{
		blog.WithLogger(logger),
		blog.WithExcerptLength(c.ExcerptLength),
	}

	// Set up repository
	repo, closeRepo, err := c.buildRepository(ctx)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to build repository: %w", err)
	}
	closers = append(closers, closeRepo)
	options = append(options, blog.WithRepository(repo))

	// Set up comment rate limiter
	limiter, closeLimiter, err := c.buildLimiter(logger)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("failed to build rate limiter: %w", err)
	}
	closers = append(closers, closeLimiter)
	options = append(options, blog.WithCommentRateLimiter(limiter, c.CommentRateLimit))

	// Set up event sinks
	var sinks blog.MultiEventSink
	if c.EnableEventLogging {
		sinks = append(sinks, blog.NewLoggingEventSink(logger))
	}
	if len(c.KafkaBrokers) > 0 {
		kafkaSink, err := events.NewKafkaSink(events.KafkaConfig{Brokers: c.KafkaBrokers, Topic: c.KafkaTopic})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("failed to build kafka sink: %w", err)
		}
		closers = append(closers, func() {
			if err := kafkaSink.Close(); err != nil {
				logger.Warn("failed to close kafka writer", "err", err)
			}
		})
		sinks = append(sinks, kafkaSink)
	}
	if len(sinks) > 0 {
		options = append(options, blog.WithEventSink(sinks))
	}

	svc, err := blog.New(options...)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return svc, cleanup, nil
}

// buildRepository creates a Repository based on the configuration
func (c *ServerConfig) buildRepository(ctx context.Context) (blog.Repository, func(), error) {
	switch c.DatabaseType {
	case "memory":
		return memory.New(), func() {}, nil
	case "postgres":
		pool, err := NewPool(ctx, c.DatabaseURL, c.DBSchema)
		if err != nil {
			return nil, nil, err
		}
		return repopg.NewWithPool(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

func (c *ServerConfig) buildLimiter(logger *slog.Logger) (ratelimit.Limiter, func(), error) {
	if c.RedisURL == "" {
		return ratelimit.NewInMemory(c.CommentRateWindow), func() {}, nil
	}
	opts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	limiter := ratelimit.NewRedis(client, c.CommentRateWindow)
	limiter.Logger = logger
	return limiter, func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close redis client", "err", err)
		}
	}, nil
}

// NewPool opens a pgx pool with search_path set to schema on every connection.
func NewPool(ctx context.Context, databaseURL, schema string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("database_url is required for postgres")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// PingPostgres verifies connectivity to Postgres.
func PingPostgres(ctx context.Context, databaseURL, schema string) error {
	pool, err := NewPool(ctx, databaseURL, schema)
	if err != nil {
		return err
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
