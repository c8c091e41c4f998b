package client

import (
	"bytes"
	"encoding/json"
	"time"
)

// The backend is not consistent about response envelopes: payloads may be
// nested under a "results" key or returned unwrapped, list endpoints may
// return an array or a single object, timestamps arrive in several ISO-8601
// flavours, and memory text shows up under either "content" or "text".
// Everything in this file turns those shapes into one canonical form and is
// deliberately free of network code.

// unwrapResults returns the payload under a top-level "results" key when
// present, or the input unchanged otherwise.
func unwrapResults(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Results) > 0 {
		return envelope.Results
	}
	return raw
}

// asList normalizes a JSON array to its elements and a single object to a
// one-element slice. Empty or null input yields nil.
func asList(raw json.RawMessage) []json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return items
		}
	}
	return []json.RawMessage{raw}
}

// timestampLayouts covers the backend's ISO-8601 variants: RFC 3339 with or
// without fractional seconds, and zone-less timestamps.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses an ISO-8601 timestamp string, returning nil when the
// input is empty or unrecognized. Zone-less input is taken as UTC.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// chunkWire is the union of the chunk shapes the backend emits: a plain
// string, or an object carrying id/content/metadata/role.
type chunkWire struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
	Role     string                 `json:"role"`
}

// decodeChunks normalizes a chunk array of strings or objects into []Chunk.
func decodeChunks(raw []json.RawMessage) []Chunk {
	if len(raw) == 0 {
		return nil
	}
	chunks := make([]Chunk, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			chunks = append(chunks, Chunk{Content: s})
			continue
		}
		var cw chunkWire
		if err := json.Unmarshal(item, &cw); err != nil {
			continue
		}
		content := cw.Content
		if content == "" {
			content = cw.Text
		}
		chunks = append(chunks, Chunk{
			ID:       cw.ID,
			Content:  content,
			Metadata: cw.Metadata,
			Role:     cw.Role,
		})
	}
	if len(chunks) == 0 {
		return nil
	}
	return chunks
}

// memoryWire mirrors the raw memory/engram record as the backend sends it.
type memoryWire struct {
	ID             string                 `json:"id"`
	EngramID       string                 `json:"engram_id"`
	Content        string                 `json:"content"`
	Text           string                 `json:"text"`
	Chunks         []json.RawMessage      `json:"chunks"`
	Metadata       map[string]interface{} `json:"metadata"`
	EngramMetadata map[string]interface{} `json:"engram_metadata"`
	CollectionIDs  []string               `json:"collection_ids"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
}

// decodeMemory reconciles a raw memory record into a MemoryResponse.
// fallbackCollections is used when the backend omits collection_ids (list
// endpoints scoped to known collections).
func decodeMemory(raw json.RawMessage, fallbackCollections []string) (*MemoryResponse, error) {
	var mw memoryWire
	if err := json.Unmarshal(raw, &mw); err != nil {
		return nil, &ClientError{Message: "malformed memory response", Err: err}
	}

	id := mw.ID
	if id == "" {
		id = mw.EngramID
	}
	content := mw.Content
	if content == "" {
		content = mw.Text
	}

	metadata := mw.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	if mw.EngramID != "" {
		metadata["engram_id"] = mw.EngramID
	}
	for k, v := range mw.EngramMetadata {
		metadata[k] = v
	}

	collectionIDs := mw.CollectionIDs
	if collectionIDs == nil {
		collectionIDs = fallbackCollections
	}

	return &MemoryResponse{
		ID:            id,
		Content:       content,
		Chunks:        decodeChunks(mw.Chunks),
		Metadata:      metadata,
		CollectionIDs: collectionIDs,
		CreatedAt:     parseTimestamp(mw.CreatedAt),
		UpdatedAt:     parseTimestamp(mw.UpdatedAt),
	}, nil
}

// collectionWire mirrors the raw collection record.
type collectionWire struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	OwnerID               string `json:"owner_id"`
	EngramCount           int    `json:"engram_count"`
	UserCount             int    `json:"user_count"`
	GraphCollectionStatus string `json:"graph_collection_status"`
	GraphSyncStatus       string `json:"graph_sync_status"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
}

// decodeCollection maps a raw collection record onto the SDK read model.
// The backend counts engrams; the SDK exposes that as MemoryCount and folds
// graph status fields into Metadata.
func decodeCollection(raw json.RawMessage) (*Collection, error) {
	var cw collectionWire
	if err := json.Unmarshal(raw, &cw); err != nil {
		return nil, &ClientError{Message: "malformed collection response", Err: err}
	}
	return &Collection{
		ID:          cw.ID,
		Name:        cw.Name,
		Description: cw.Description,
		OwnerID:     cw.OwnerID,
		MemoryCount: cw.EngramCount,
		Metadata: map[string]interface{}{
			"graph_collection_status": cw.GraphCollectionStatus,
			"graph_sync_status":       cw.GraphSyncStatus,
			"user_count":              cw.UserCount,
			"engram_count":            cw.EngramCount,
		},
		CreatedAt: parseTimestamp(cw.CreatedAt),
		UpdatedAt: parseTimestamp(cw.UpdatedAt),
	}, nil
}
