package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCollectionsListCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/collections" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"results":[{"id":"col-1","name":"notes"}]}`))
	}))
	defer srv.Close()

	t.Setenv("NEBULA_API_KEY", "key_test.secret")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"collections", "list", "--api", srv.URL})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), `"name": "notes"`) {
		t.Fatalf("output = %s", out.String())
	}
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	t.Setenv("NEBULA_API_KEY", "key_test.secret")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"search"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing --query")
	}
}
