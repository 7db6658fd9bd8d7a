package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	_ = godotenv.Load()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Blog maintenance tool",
		Long: `Command line tooling for the blog service.

Preview slugs and excerpts, mint development tokens, and prepare the
Postgres schema. Database commands read DATABASE_URL and DB_SCHEMA.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewSlugCommand())
	rootCmd.AddCommand(NewExcerptCommand())
	rootCmd.AddCommand(NewTokenCommand())
	rootCmd.AddCommand(NewSchemaCommand())
	rootCmd.AddCommand(NewInitDBCommand())

	return rootCmd
}
