package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/oilmonegov/Blog/pkg/blog"
	"github.com/oilmonegov/Blog/pkg/blog/config"
	"github.com/oilmonegov/Blog/pkg/blog/repo/postgres"
)

// NewSlugCommand prints the slug a title would get on an empty blog
func NewSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title...>",
		Short: "Print the slug derived from a title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug, err := blog.ResolveSlug(cmd.Context(), strings.Join(args, " "), uuid.Nil,
				func(context.Context, string, uuid.UUID) (bool, error) { return false, nil })
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug)
			return nil
		},
	}
}

// NewExcerptCommand derives an excerpt from a file or stdin
func NewExcerptCommand() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "excerpt [file]",
		Short: "Print the excerpt derived from HTML content",
		Long:  `Reads content from the given file, or stdin when omitted, and prints the derived excerpt.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}
			content, err := io.ReadAll(r)
			if err != nil {
				return fmt.Errorf("failed to read content: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), blog.DeriveExcerpt(string(content), length))
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", blog.DefaultExcerptLength, "maximum excerpt length in characters")
	return cmd
}

// NewTokenCommand mints an HS256 bearer token for local development
func NewTokenCommand() *cobra.Command {
	var subject, role, secret string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an admin or author",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedRole, err := blog.ParseRole(role)
			if err != nil {
				return err
			}
			id := uuid.New()
			if subject != "" {
				if id, err = uuid.Parse(subject); err != nil {
					return fmt.Errorf("invalid subject: %w", err)
				}
			}
			if secret == "" {
				cfg, err := config.Load(config.WithEnv())
				if err != nil {
					return err
				}
				secret = cfg.JWTSecret
			}

			now := time.Now()
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub":  id.String(),
				"role": parsedRole.String(),
				"iat":  now.Unix(),
				"exp":  now.Add(ttl).Unix(),
			})
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "actor id (random when empty)")
	cmd.Flags().StringVar(&role, "role", "author", "actor role: admin or author")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

// NewSchemaCommand prints the Postgres schema
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the Postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), postgres.Schema)
			return err
		},
	}
}

// NewInitDBCommand creates the schema and tables in the configured database
func NewInitDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the blog schema and tables in Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.WithEnv())
			if err != nil {
				return err
			}
			if cfg.DatabaseType != "postgres" {
				return fmt.Errorf("init-db requires a postgres DATABASE_URL")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			pool, err := config.NewPool(ctx, cfg.DatabaseURL, cfg.DBSchema)
			if err != nil {
				return err
			}
			defer pool.Close()

			if cfg.DBSchema != "" {
				if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{cfg.DBSchema}.Sanitize()); err != nil {
					return fmt.Errorf("failed to create schema %s: %w", cfg.DBSchema, err)
				}
			}
			if err := postgres.Migrate(ctx, pool); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema %q is up to date\n", cfg.DBSchema)
			return nil
		},
	}
}
