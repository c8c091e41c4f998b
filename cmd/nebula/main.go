package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nebulacloud/nebula-go/client"
	"github.com/nebulacloud/nebula-go/internal/config"
)

var (
	apiKeyFlag  string
	baseURLFlag string
)

// NewRootCmd builds the CLI command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nebula",
		Short: "CLI client for the Nebula memory API",
	}
	rootCmd.PersistentFlags().StringVarP(&apiKeyFlag, "api-key", "k", "", "Nebula API key (defaults to NEBULA_API_KEY)")
	rootCmd.PersistentFlags().StringVarP(&baseURLFlag, "api", "a", "", "Nebula service base URL (defaults to NEBULA_BASE_URL)")

	rootCmd.AddCommand(newCollectionsCmd())
	rootCmd.AddCommand(newMemoriesCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newHealthCmd())
	return rootCmd
}

// newClient builds a client from flags with env fallbacks.
func newClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = cfg.APIKey
	}
	baseURL := baseURLFlag
	if baseURL == "" {
		baseURL = cfg.BaseURL
	}
	return client.New(apiKey,
		client.WithBaseURL(baseURL),
		client.WithTimeout(cfg.Timeout),
	)
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
