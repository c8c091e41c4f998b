package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestPartFromBytesDetection(t *testing.T) {
	data := []byte("payload")
	encoded := base64.StdEncoding.EncodeToString(data)

	part, err := PartFromBytes(data, "photo.PNG")
	if err != nil {
		t.Fatal(err)
	}
	img, ok := part.(ImageContent)
	if !ok || img.MediaType != "image/png" || img.Data != encoded {
		t.Fatalf("image part = %+v", part)
	}

	part, err = PartFromBytes(data, "memo.mp3")
	if err != nil {
		t.Fatal(err)
	}
	if audio, ok := part.(AudioContent); !ok || audio.MediaType != "audio/mpeg" {
		t.Fatalf("audio part = %+v", part)
	}

	part, err = PartFromBytes(data, "report.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if doc, ok := part.(DocumentContent); !ok || doc.MediaType != "application/pdf" {
		t.Fatalf("document part = %+v", part)
	}

	if _, err := PartFromBytes(data, "mystery.xyz"); err == nil {
		t.Fatal("expected error for unknown extension")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	part, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc, ok := part.(DocumentContent)
	if !ok || doc.Filename != "note.txt" || doc.MediaType != "text/plain" {
		t.Fatalf("part = %+v", part)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestContentPartTypeTags(t *testing.T) {
	cases := []struct {
		part ContentPart
		want string
	}{
		{TextContent{Text: "hi"}, "text"},
		{ImageContent{Data: "x", MediaType: "image/png"}, "image"},
		{AudioContent{Data: "x", MediaType: "audio/wav"}, "audio"},
		{DocumentContent{Data: "x", MediaType: "application/pdf"}, "document"},
		{FileRef{StorageKey: "uploads/abc"}, "s3_ref"},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.part)
		if err != nil {
			t.Fatal(err)
		}
		var m map[string]interface{}
		_ = json.Unmarshal(b, &m)
		if m["type"] != tc.want {
			t.Errorf("type tag = %v, want %s (%s)", m["type"], tc.want, b)
		}
	}

	b, _ := json.Marshal(FileRef{StorageKey: "uploads/abc"})
	var m map[string]interface{}
	_ = json.Unmarshal(b, &m)
	if m["s3_key"] != "uploads/abc" {
		t.Fatalf("s3_key = %v", m["s3_key"])
	}
}

func TestProcessMultimodalContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/multimodal/process" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		parts, _ := body["content_parts"].([]interface{})
		if len(parts) != 1 {
			t.Errorf("content_parts = %v", body["content_parts"])
		}
		if body["vision_model"] != "fast-vision" {
			t.Errorf("vision_model = %v", body["vision_model"])
		}
		_, _ = w.Write([]byte(`{"results":{"extracted_text":"it says hello"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	result, err := c.ProcessMultimodalContent(context.Background(),
		[]ContentPart{ImageContent{Data: "abc", MediaType: "image/png"}},
		&MultimodalOptions{VisionModel: "fast-vision"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if result["extracted_text"] != "it says hello" {
		t.Fatalf("result = %v", result)
	}
}

func TestGetUploadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filename") != "big.pdf" || q.Get("content_type") != "application/pdf" || q.Get("file_size") != "1048576" {
			t.Errorf("query = %v", q)
		}
		_, _ = w.Write([]byte(`{"upload_url":"https://bucket/upload","s3_key":"uploads/big.pdf","expires_in":3600}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	target, err := c.GetUploadURL(context.Background(), "big.pdf", "application/pdf", 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if target.UploadURL != "https://bucket/upload" || target.StorageKey != "uploads/big.pdf" {
		t.Fatalf("target = %+v", target)
	}
}
