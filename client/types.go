package client

import "time"

// ------------------------------
// Core domain types and payloads
// ------------------------------

// Collection is a named grouping of memories.
type Collection struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	MemoryCount int                    `json:"memory_count"`
	OwnerID     string                 `json:"owner_id,omitempty"`
	CreatedAt   *time.Time             `json:"created_at,omitempty"`
	UpdatedAt   *time.Time             `json:"updated_at,omitempty"`
}

// CreateCollectionRequest is the payload for POST /v1/collections.
type CreateCollectionRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateCollectionRequest carries the mutable collection fields. Zero-value
// fields are omitted from the request.
type UpdateCollectionRequest struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Chunk is a sub-unit of a memory's content as stored server-side. Role is
// set for conversation messages.
type Chunk struct {
	ID       string                 `json:"id,omitempty"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Role     string                 `json:"role,omitempty"`
}

// MemoryResponse is the read model returned by get/list operations. Exactly
// one of Content or Chunks is typically populated for text memories.
type MemoryResponse struct {
	ID            string                 `json:"id"`
	Content       string                 `json:"content,omitempty"`
	Chunks        []Chunk                `json:"chunks,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CollectionIDs []string               `json:"collection_ids,omitempty"`
	CreatedAt     *time.Time             `json:"created_at,omitempty"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty"`
}

// Message is a single conversation message for write operations.
type Message struct {
	Role      string                 `json:"role"`
	Content   interface{}            `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Authority *float64               `json:"authority,omitempty"`
}

// Memory is the unified write model for StoreMemory / StoreMemories.
//
// Routing rules:
//   - MemoryID set → append to that memory (conversation or document)
//   - MemoryID empty, Role set → create a conversation message
//   - MemoryID empty, Role empty → create a document
//
// Content carries plain text; Chunks pre-chunked text; Parts multimodal
// content; Messages explicit conversation messages for appends. Authority,
// when set, must lie in [0,1]; out-of-range values are silently dropped
// rather than persisted.
type Memory struct {
	CollectionID string
	Content      string
	Chunks       []string
	Messages     []Message
	Parts        []ContentPart
	Role         string
	MemoryID     string
	Name         string
	Metadata     map[string]interface{}
	Authority    *float64
	VisionModel  string
	AudioModel   string
	FastMode     *bool
}

// MemoryUpdate carries memory-level property changes for UpdateMemory.
// At least one of Name, Metadata, or CollectionIDs must be set.
type MemoryUpdate struct {
	Name          string
	Metadata      map[string]interface{}
	MergeMetadata bool
	CollectionIDs []string
}

// ListMemoriesOptions scopes a ListMemories call. CollectionIDs is required;
// MetadataFilters uses the backend's Mongo-style operator syntax.
type ListMemoriesOptions struct {
	CollectionIDs   []string
	Limit           int
	Offset          int
	MetadataFilters map[string]interface{}
}

// BulkDeleteFailure is one failed id in a bulk delete.
type BulkDeleteFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkDeleteSummary is the server-computed tally for a bulk delete.
type BulkDeleteSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// BulkDeleteResult is the server's bulk-delete report, passed through to the
// caller unmodified. The client never reinterprets the counts.
type BulkDeleteResult struct {
	Successful []string            `json:"successful"`
	Failed     []BulkDeleteFailure `json:"failed"`
	Summary    BulkDeleteSummary   `json:"summary"`
}

// UploadTarget is a presigned upload slot for large files. StorageKey is the
// opaque key referenced in subsequent FileRef content parts.
type UploadTarget struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"s3_key"`
	Bucket     string `json:"bucket,omitempty"`
	ExpiresIn  int    `json:"expires_in,omitempty"`
	MaxSize    int64  `json:"max_size,omitempty"`
}
