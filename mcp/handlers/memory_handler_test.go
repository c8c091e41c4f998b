package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestStoreMemoryTool(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/memories" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["engram_type"] != "conversation" {
			t.Errorf("engram_type = %v", body["engram_type"])
		}
		_, _ = w.Write([]byte(`{"id":"mem-1"}`))
	}))
	defer ts.Close()

	mh := NewMemoryHandler(newStubClient(t, ts.URL))
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{
				"collection_id": "col-1",
				"content":       "hello",
				"role":          "user",
			},
		},
	}
	res, err := mh.handleStore(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	textContent, _ := res.Content[0].(mcp.TextContent)
	var payload map[string]string
	if err := json.Unmarshal([]byte(textContent.Text), &payload); err != nil {
		t.Fatalf("payload not JSON: %v", err)
	}
	if payload["memory_id"] != "mem-1" {
		t.Fatalf("memory_id = %q", payload["memory_id"])
	}
}

func TestDeleteMemoryTool(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/v1/memories/mem-1" {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer ts.Close()

	mh := NewMemoryHandler(newStubClient(t, ts.URL))
	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]any{"memory_id": "mem-1"},
		},
	}
	res, err := mh.handleDelete(context.Background(), req)
	if err != nil || res.IsError {
		t.Fatalf("delete failed: %v %+v", err, res)
	}
}
