//go:build integration

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/nebulacloud/nebula-go/client"
)

// End-to-end exercise against a live backend. Requires NEBULA_TEST_BACKEND_URL
// and NEBULA_API_KEY; run with -tags integration.
func TestMemoryLifecycle(t *testing.T) {
	backendURL := os.Getenv("NEBULA_TEST_BACKEND_URL")
	if backendURL == "" {
		t.Skip("NEBULA_TEST_BACKEND_URL not set")
	}

	c, err := client.New("", client.WithBaseURL(backendURL), client.WithTimeout(60*time.Second))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := c.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	col, err := c.CreateCollection(ctx, client.CreateCollectionRequest{
		Name: fmt.Sprintf("it-%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	defer func() {
		if err := c.DeleteCollection(ctx, col.ID); err != nil {
			t.Logf("cleanup DeleteCollection: %v", err)
		}
	}()

	docID, err := c.StoreMemory(ctx, client.Memory{
		CollectionID: col.ID,
		Content:      "The launch review is scheduled for Thursday morning.",
	})
	if err != nil {
		t.Fatalf("StoreMemory document: %v", err)
	}

	convID, err := c.StoreMemory(ctx, client.Memory{
		CollectionID: col.ID,
		Content:      "When is the launch review?",
		Role:         "user",
	})
	if err != nil {
		t.Fatalf("StoreMemory conversation: %v", err)
	}
	if _, err := c.StoreMemory(ctx, client.Memory{
		CollectionID: col.ID,
		MemoryID:     convID,
		Content:      "Thursday morning.",
		Role:         "assistant",
	}); err != nil {
		t.Fatalf("StoreMemory append: %v", err)
	}

	mem, err := c.GetMemory(ctx, docID)
	if err != nil {
		t.Fatalf("GetMemory: %v", err)
	}
	if mem.ID == "" {
		t.Fatal("GetMemory returned empty id")
	}

	recall, err := c.Search(ctx, "launch review", &client.SearchOptions{
		CollectionIDs: []string{col.ID},
		Limit:         5,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if recall.Query != "launch review" {
		t.Fatalf("recall query = %q", recall.Query)
	}

	result, err := c.DeleteMemories(ctx, []string{docID, convID})
	if err != nil {
		t.Fatalf("DeleteMemories: %v", err)
	}
	if result.Summary.Failed > 0 {
		t.Fatalf("bulk delete failures: %+v", result.Failed)
	}
}
