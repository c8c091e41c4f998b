package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/nebulacloud/nebula-go/client"
	"github.com/nebulacloud/nebula-go/internal/config"
	"github.com/nebulacloud/nebula-go/mcp/handlers"
)

const (
	serverName    = "nebula-mcp-server"
	serverVersion = "0.1.0"
)

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

// RunMCPServer loads configuration, builds the Nebula client, registers all
// tool handlers, and serves over stdio until the host disconnects.
func RunMCPServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Init()

	nebulaClient, err := client.New(cfg.APIKey,
		client.WithBaseURL(cfg.BaseURL),
		client.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create client")
		return err
	}
	defer nebulaClient.Close()

	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewCollectionHandler(nebulaClient), "collection")
	registerHandler(s, handlers.NewMemoryHandler(nebulaClient), "memory")
	registerHandler(s, handlers.NewSearchHandler(nebulaClient), "search")

	log.Info().Msg("Starting Nebula MCP server (stdio transport)")
	return server.ServeStdio(s)
}
