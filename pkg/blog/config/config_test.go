package config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oilmonegov/Blog/pkg/blog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.DatabaseType)
	assert.Equal(t, DevJWTSecret, cfg.JWTSecret)
	assert.Equal(t, blog.DefaultCommentRateLimit, cfg.CommentRateLimit)
	assert.Equal(t, time.Minute, cfg.CommentRateWindow)
	assert.True(t, cfg.EnableEventLogging)
	assert.False(t, cfg.IsProduction())
}

func TestOptions(t *testing.T) {
	cfg, err := Load(
		WithPort("3000"),
		WithEnvironment("production"),
		WithJWTSecret("secret"),
		WithDatabase("postgres", "postgres://localhost/blog"),
		WithDatabaseSchema("public"),
		WithCommentRateLimit(5, 10*time.Second),
		WithKafka([]string{" k1:9092 ", ""}, "events"),
		WithEventLogging(false),
		WithExcerptLength(80),
		WithCORSOrigins("https://blog.example"),
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "public", cfg.DBSchema)
	assert.Equal(t, 5, cfg.CommentRateLimit)
	assert.Equal(t, []string{"k1:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 80, cfg.ExcerptLength)
	assert.Equal(t, []string{"https://blog.example"}, cfg.CORSAllowedOrigins)
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty port", WithPort("")},
		{"empty environment", WithEnvironment("")},
		{"unknown database", WithDatabase("mysql", "")},
		{"postgres without url", WithDatabase("postgres", "")},
		{"empty secret", WithJWTSecret("")},
		{"bad redis url", WithRedis("localhost:6379")},
		{"zero rate limit", WithCommentRateLimit(0, time.Minute)},
		{"zero window", WithCommentRateLimit(1, 0)},
		{"no brokers", WithKafka(nil, "events")},
		{"no topic", WithKafka([]string{"k1:9092"}, "")},
		{"zero excerpt", WithExcerptLength(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.opt)
			assert.Error(t, err)
		})
	}
}

func TestProductionWithoutSecretFails(t *testing.T) {
	_, err := Load(WithEnvironment("production"))
	assert.Error(t, err)
}

func TestBuildServiceMemory(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	svc, cleanup, err := cfg.BuildService(context.Background(), nil)
	require.NoError(t, err)
	defer cleanup()

	author := &blog.Actor{ID: uuid.New(), Role: blog.RoleAuthor}
	post, err := svc.CreatePost(context.Background(), author, blog.CreatePostRequest{
		Title:   "Configured",
		Content: "Built from config",
	})
	require.NoError(t, err)
	assert.Equal(t, "configured", post.Slug)
}

func TestBuildServiceWithRedisAndKafka(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg, err := Load(
		WithRedis("redis://"+mr.Addr()),
		WithCommentRateLimit(1, time.Minute),
		WithKafka([]string{"127.0.0.1:9092"}, "blog-events"),
		WithEventLogging(false),
	)
	require.NoError(t, err)

	svc, cleanup, err := cfg.BuildService(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, svc)
	cleanup()
}

func TestBuildServicePostgresBadURL(t *testing.T) {
	cfg := defaults()
	cfg.DatabaseType = "postgres"
	cfg.DatabaseURL = "postgres://%zz"

	_, cleanup, err := cfg.BuildService(context.Background(), nil)
	assert.Error(t, err)
	cleanup()
}
