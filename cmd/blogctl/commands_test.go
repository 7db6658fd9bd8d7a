package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestSlugCommand(t *testing.T) {
	out, err := execute(t, "", "slug", "Hello,", "World!")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", out)

	_, err = execute(t, "", "slug", "!!!")
	assert.Error(t, err)
}

func TestExcerptCommand(t *testing.T) {
	out, err := execute(t, "<p>The quick brown fox</p><script>x()</script>", "excerpt", "--length", "9")
	require.NoError(t, err)
	assert.Equal(t, "The quick...", out)
}

func TestTokenCommand(t *testing.T) {
	sub := uuid.New()
	out, err := execute(t, "", "token", "--sub", sub.String(), "--role", "admin", "--secret", "s3cret")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(out, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.Equal(t, sub.String(), claims["sub"])
	assert.Equal(t, "admin", claims["role"])

	_, err = execute(t, "", "token", "--role", "editor", "--secret", "s3cret")
	assert.Error(t, err)
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS posts")
}

func TestInitDBRequiresPostgres(t *testing.T) {
	t.Setenv("DATABASE_URL", "memory")
	_, err := execute(t, "", "init-db")
	assert.Error(t, err)
}
