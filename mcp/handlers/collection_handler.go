package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nebulacloud/nebula-go/client"
)

// CollectionHandler exposes collection management tools.
type CollectionHandler struct {
	client *client.Client
}

func NewCollectionHandler(c *client.Client) *CollectionHandler {
	return &CollectionHandler{client: c}
}

// RegisterTools registers the collection tools.
func (ch *CollectionHandler) RegisterTools(s *server.MCPServer) error {
	createTool := mcp.NewTool("create_collection",
		mcp.WithDescription("Create a new memory collection."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Collection name")),
		mcp.WithString("description", mcp.Description("Optional description")),
	)
	s.AddTool(createTool, ch.handleCreate)

	listTool := mcp.NewTool("list_collections",
		mcp.WithDescription("List accessible memory collections."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of collections to return (default 100)")),
	)
	s.AddTool(listTool, ch.handleList)
	return nil
}

func (ch *CollectionHandler) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := req.RequireString("name")
	description, _ := req.GetArguments()["description"].(string)

	col, err := ch.client.CreateCollection(ctx, client.CreateCollectionRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("create failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(col, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (ch *CollectionHandler) handleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 100
	if v, ok := req.GetArguments()["limit"].(float64); ok && v >= 1 {
		limit = int(v)
	}

	collections, err := ch.client.ListCollections(ctx, limit, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(collections, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
