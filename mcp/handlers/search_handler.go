package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nebulacloud/nebula-go/client"
)

// SearchHandler exposes the search_memories tool.
type SearchHandler struct {
	client *client.Client
}

func NewSearchHandler(c *client.Client) *SearchHandler {
	return &SearchHandler{client: c}
}

// RegisterTools registers the search_memories tool.
func (sh *SearchHandler) RegisterTools(s *server.MCPServer) error {
	searchTool := mcp.NewTool("search_memories",
		mcp.WithDescription("Semantic search across memory collections. Returns a hierarchical recall: activated entities, facts, and utterances with activation scores."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query text")),
		mcp.WithString("collection_id", mcp.Description("Collection UUID or name to scope the search; omit to search all accessible collections")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (1-1000, default 10)")),
	)
	s.AddTool(searchTool, sh.handleSearch)
	return nil
}

func (sh *SearchHandler) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, _ := req.RequireString("query")

	opts := &client.SearchOptions{}
	if id, ok := req.GetArguments()["collection_id"].(string); ok && id != "" {
		opts.CollectionIDs = []string{id}
	}
	if v, ok := req.GetArguments()["limit"].(float64); ok {
		if v >= 1 && v <= 1000 {
			opts.Limit = int(v)
		}
	}

	recall, err := sh.client.Search(ctx, query, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	b, _ := json.MarshalIndent(recall, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}
