package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/nebulacloud/nebula-go/client"
)

// MemoryHandler exposes store/get/delete tools for memories.
type MemoryHandler struct {
	client *client.Client
}

func NewMemoryHandler(c *client.Client) *MemoryHandler {
	return &MemoryHandler{client: c}
}

// RegisterTools registers the memory tools.
func (mh *MemoryHandler) RegisterTools(s *server.MCPServer) error {
	storeTool := mcp.NewTool("store_memory",
		mcp.WithDescription("Store a memory. With a role the content becomes a conversation message; without one it becomes a document. Pass memory_id to append to an existing memory."),
		mcp.WithString("collection_id", mcp.Required(), mcp.Description("Collection UUID or name")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Text content to store")),
		mcp.WithString("role", mcp.Description("Speaker role (user/assistant); presence selects conversation mode")),
		mcp.WithString("memory_id", mcp.Description("Existing memory UUID to append to")),
	)
	s.AddTool(storeTool, mh.handleStore)

	getTool := mcp.NewTool("get_memory",
		mcp.WithDescription("Fetch a memory by ID, including its chunks."),
		mcp.WithString("memory_id", mcp.Required(), mcp.Description("The UUID of the memory")),
	)
	s.AddTool(getTool, mh.handleGet)

	deleteTool := mcp.NewTool("delete_memory",
		mcp.WithDescription("Delete a memory by ID."),
		mcp.WithString("memory_id", mcp.Required(), mcp.Description("The UUID of the memory")),
	)
	s.AddTool(deleteTool, mh.handleDelete)
	return nil
}

func (mh *MemoryHandler) handleStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	collectionID, _ := req.RequireString("collection_id")
	content, _ := req.RequireString("content")
	role, _ := req.GetArguments()["role"].(string)
	memoryID, _ := req.GetArguments()["memory_id"].(string)

	id, err := mh.client.StoreMemory(ctx, client.Memory{
		CollectionID: collectionID,
		Content:      content,
		Role:         role,
		MemoryID:     memoryID,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("store failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf(`{"memory_id":%q}`, id)), nil
}

func (mh *MemoryHandler) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memoryID, _ := req.RequireString("memory_id")

	mem, err := mh.client.GetMemory(ctx, memoryID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get failed: %v", err)), nil
	}
	b, _ := json.MarshalIndent(mem, "", "  ")
	return mcp.NewToolResultText(string(b)), nil
}

func (mh *MemoryHandler) handleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	memoryID, _ := req.RequireString("memory_id")

	if err := mh.client.DeleteMemory(ctx, memoryID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("delete failed: %v", err)), nil
	}
	return mcp.NewToolResultText(`{"deleted":true}`), nil
}
