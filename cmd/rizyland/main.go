// Package main is the entry point for the RIZY LAND catalog backend. The
// serve command runs the HTTP API; catalog and convert are operator tools.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rizyland",
		Short:        "Catalog and commerce backend of the RIZY LAND reading app",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Only the server logs to stdout; the tools keep it for output.
			var out io.Writer = cmd.ErrOrStderr()
			if cmd.Name() == "serve" {
				out = cmd.OutOrStdout()
			}
			setupLogger(out, os.Getenv("APP_ENV"))
		},
	}
	root.AddCommand(newServeCmd(), newCatalogCmd(), newConvertCmd())
	return root
}

// setupLogger installs the default structured logger: JSON in production,
// text everywhere else.
func setupLogger(w io.Writer, env string) {
	if env == "production" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})))
}
