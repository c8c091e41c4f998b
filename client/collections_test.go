package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCollectionEndpoints(t *testing.T) {
	colJSON := `{"id":"col-1","name":"notes","description":"scratch","engram_count":3}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/collections":
			var body CreateCollectionRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body.Name != "notes" {
				t.Errorf("create name = %q", body.Name)
			}
			_, _ = w.Write([]byte(colJSON))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/collections/col-1":
			// Wrapped response shape.
			_, _ = w.Write([]byte(`{"results":` + colJSON + `}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/collections/name/notes":
			_, _ = w.Write([]byte(colJSON))
		case r.Method == http.MethodGet && r.URL.Path == "/v1/collections":
			if got := r.URL.Query().Get("limit"); got != "100" {
				t.Errorf("default limit = %q", got)
			}
			_, _ = w.Write([]byte(`{"results":[` + colJSON + `]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/collections/col-1":
			_, _ = w.Write([]byte(colJSON))
		case r.Method == http.MethodDelete && r.URL.Path == "/v1/collections/col-1":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	col, err := c.CreateCollection(ctx, CreateCollectionRequest{Name: "notes", Description: "scratch"})
	if err != nil || col.ID != "col-1" {
		t.Fatalf("CreateCollection: %v %+v", err, col)
	}

	col, err = c.GetCollection(ctx, "col-1")
	if err != nil || col.MemoryCount != 3 {
		t.Fatalf("GetCollection: %v %+v", err, col)
	}

	col, err = c.GetCollectionByName(ctx, "notes")
	if err != nil || col.Name != "notes" {
		t.Fatalf("GetCollectionByName: %v %+v", err, col)
	}

	cols, err := c.ListCollections(ctx, 0, 0)
	if err != nil || len(cols) != 1 {
		t.Fatalf("ListCollections: %v %v", err, cols)
	}

	col, err = c.UpdateCollection(ctx, "col-1", UpdateCollectionRequest{Description: "updated"})
	if err != nil || col.ID != "col-1" {
		t.Fatalf("UpdateCollection: %v", err)
	}

	if err := c.DeleteCollection(ctx, "col-1"); err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
}

func TestGetCollectionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such collection"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetCollection(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}

func TestListCollectionsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a"},{"id":"b"}]`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	cols, err := c.ListCollections(context.Background(), 10, 0)
	if err != nil || len(cols) != 2 {
		t.Fatalf("bare array: %v %v", err, cols)
	}
}
