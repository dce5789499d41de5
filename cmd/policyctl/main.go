package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/medassn/policy-content/pkg/policycontent/client"
	"github.com/medassn/policy-content/pkg/policycontent/config"
)

func main() {
	// Load .env if present; environment variables take precedence.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "policyctl",
		Short: "Admin CLI for the policy-content service",
		Long: `policyctl manages policy content, workshops and collaboration
submissions through the policy-content API.

Configuration is read from the environment (or a .env file):
  POLICY_API_BASE_URL   API base URL (default: http://localhost:8000/api)
  POLICY_API_TOKEN      Bearer token for authenticated requests
  POLICY_REQUEST_TIMEOUT  Per-request timeout (default: 30s)`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newContentCommand(),
		newWorkshopsCommand(),
		newCollaborationsCommand(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newClient builds an API client from environment configuration.
func newClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return client.New(cfg.APIBaseURL,
		client.Credentials{BearerToken: cfg.APIToken},
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	), nil
}
