package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Memory operations - all methods operate directly on Client

// idWire is the id envelope returned by write endpoints. Some deployments
// answer with "id", others with "engram_id".
type idWire struct {
	ID       string `json:"id"`
	EngramID string `json:"engram_id"`
}

func (w idWire) value() string {
	if w.EngramID != "" {
		return w.EngramID
	}
	return w.ID
}

// contentHash returns the hex sha256 of the document text, used as the
// dedup key in stored metadata.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// deterministicDocumentID derives a stable UUID from a content hash. Used
// as the returned document ID when the backend omits one.
func deterministicDocumentID(hash string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(hash)).String()
}

// StoreMemory stores or appends a memory via the unified memory API.
//
// Routing follows the write model: a set MemoryID appends to that memory; a
// set Role creates a conversation message; otherwise a document is created.
// The memory ID is returned in all three cases.
func (c *Client) StoreMemory(ctx context.Context, mem Memory) (string, error) {
	if err := requireArg("collectionId", mem.CollectionID); err != nil {
		return "", err
	}
	if mem.MemoryID != "" {
		return c.appendToMemory(ctx, mem.MemoryID, mem)
	}
	if mem.Role != "" {
		msg, err := messageFor(mem)
		if err != nil {
			return "", err
		}
		return c.createConversation(ctx, mem, []Message{msg})
	}
	return c.createDocument(ctx, mem)
}

// Store is the legacy raw-text entry point, kept as a thin alias of
// StoreMemory.
func (c *Client) Store(ctx context.Context, collectionID, content string, metadata map[string]interface{}) (string, error) {
	return c.StoreMemory(ctx, Memory{
		CollectionID: collectionID,
		Content:      content,
		Metadata:     metadata,
	})
}

// messageFor builds the conversation message carried by a Memory write.
// Multimodal parts take precedence over plain text.
func messageFor(mem Memory) (Message, error) {
	var content interface{}
	switch {
	case len(mem.Parts) > 0:
		content = mem.Parts
	case mem.Content != "":
		content = mem.Content
	default:
		return Message{}, &ClientError{
			Message: "conversation memories require at least one message with content",
		}
	}
	msg := Message{Role: mem.Role, Content: content, Metadata: mem.Metadata}
	if v, ok := validAuthority(mem.Authority); ok {
		msg.Authority = &v
	}
	return msg, nil
}

// createConversation creates a conversation memory holding the given
// messages and returns the conversation ID.
func (c *Client) createConversation(ctx context.Context, mem Memory, messages []Message) (string, error) {
	payload := map[string]interface{}{
		"collection_ref": mem.CollectionID,
		"engram_type":    "conversation",
		"messages":       messages,
		"metadata":       orEmpty(mem.Metadata),
	}
	if mem.Name != "" {
		payload["name"] = mem.Name
	}
	addMultimodalOptions(payload, mem)

	raw, err := c.do(ctx, http.MethodPost, "/v1/memories", requestOptions{jsonBody: payload})
	if err != nil {
		return "", err
	}
	var w idWire
	if err := json.Unmarshal(unwrapResults(raw), &w); err != nil || w.value() == "" {
		return "", &ClientError{Message: "failed to create conversation: no id returned"}
	}
	return w.value(), nil
}

// createDocument creates a document memory and returns its ID. The content
// hash is always recorded in metadata as the dedup key; the authority score
// is persisted only when it lies in [0,1].
func (c *Client) createDocument(ctx context.Context, mem Memory) (string, error) {
	metadata := orEmpty(mem.Metadata)
	metadata["memory_type"] = "memory"
	if v, ok := validAuthority(mem.Authority); ok {
		metadata["authority"] = v
	}

	payload := map[string]interface{}{
		"collection_ref": mem.CollectionID,
		"engram_type":    "document",
		"metadata":       metadata,
		"ingestion_mode": "fast",
	}

	hash := ""
	switch {
	case len(mem.Parts) > 0:
		payload["content_parts"] = mem.Parts
		addMultimodalOptions(payload, mem)
	case len(mem.Chunks) > 0:
		hash = contentHash(strings.Join(mem.Chunks, "\n"))
		metadata["content_hash"] = hash
		payload["chunks"] = mem.Chunks
	case mem.Content != "":
		hash = contentHash(mem.Content)
		metadata["content_hash"] = hash
		payload["raw_text"] = mem.Content
	default:
		return "", &ClientError{Message: "content is required for document memories"}
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/memories", requestOptions{jsonBody: payload})
	if err != nil {
		return "", err
	}
	var w idWire
	if err := json.Unmarshal(unwrapResults(raw), &w); err == nil && w.value() != "" {
		return w.value(), nil
	}
	if hash != "" {
		return deterministicDocumentID(hash), nil
	}
	return "", &ClientError{Message: "failed to create document: no id returned"}
}

// appendToMemory appends content to an existing memory. Works for both
// conversations (messages) and documents (chunks or raw text).
func (c *Client) appendToMemory(ctx context.Context, memoryID string, mem Memory) (string, error) {
	payload := map[string]interface{}{
		"collection_id": mem.CollectionID,
	}
	switch {
	case len(mem.Messages) > 0:
		payload["messages"] = mem.Messages
	case len(mem.Chunks) > 0:
		payload["chunks"] = mem.Chunks
	case mem.Content != "" && mem.Role != "":
		payload["messages"] = []Message{{Role: mem.Role, Content: mem.Content, Metadata: mem.Metadata}}
	case mem.Content != "":
		payload["raw_text"] = mem.Content
	default:
		return "", &ClientError{Message: "content is required to append to a memory"}
	}
	if mem.Metadata != nil {
		payload["metadata"] = mem.Metadata
	}
	addMultimodalOptions(payload, mem)

	_, err := c.do(ctx, http.MethodPost, "/v1/memories/"+memoryID+"/append", requestOptions{jsonBody: payload})
	if err != nil {
		return "", notFoundOr(err, "memory", memoryID)
	}
	return memoryID, nil
}

// StoreMemories stores a batch of memories. Conversation messages sharing a
// target are grouped: new conversations are created with all their messages
// in one call, existing ones receive a single append. Documents are stored
// individually. IDs come back in input order.
func (c *Client) StoreMemories(ctx context.Context, memories []Memory) ([]string, error) {
	results := make([]string, len(memories))

	type convGroup struct {
		first   Memory
		indices []int
		msgs    []Message
	}
	groups := map[string]*convGroup{}
	order := []string{}

	for i, mem := range memories {
		if mem.Role == "" {
			id, err := c.StoreMemory(ctx, mem)
			if err != nil {
				return nil, err
			}
			results[i] = id
			continue
		}
		key := mem.MemoryID
		if key == "" {
			key = "new:" + mem.CollectionID
		}
		g, ok := groups[key]
		if !ok {
			g = &convGroup{first: mem}
			groups[key] = g
			order = append(order, key)
		}
		msg, err := messageFor(mem)
		if err != nil {
			return nil, err
		}
		g.indices = append(g.indices, i)
		g.msgs = append(g.msgs, msg)
	}

	for _, key := range order {
		g := groups[key]
		var id string
		var err error
		if g.first.MemoryID == "" {
			id, err = c.createConversation(ctx, g.first, g.msgs)
		} else {
			id, err = c.appendToMemory(ctx, g.first.MemoryID, Memory{
				CollectionID: g.first.CollectionID,
				Messages:     g.msgs,
				VisionModel:  g.first.VisionModel,
				AudioModel:   g.first.AudioModel,
				FastMode:     g.first.FastMode,
			})
		}
		if err != nil {
			return nil, err
		}
		for _, i := range g.indices {
			results[i] = id
		}
	}
	return results, nil
}

// CreateDocumentText creates a new document from raw text. An empty
// ingestionMode defaults to "fast".
func (c *Client) CreateDocumentText(ctx context.Context, collectionRef, rawText string, metadata map[string]interface{}, ingestionMode string) (string, error) {
	if err := requireArg("rawText", rawText); err != nil {
		return "", err
	}
	return c.createDocumentPayload(ctx, collectionRef, map[string]interface{}{"raw_text": rawText}, metadata, ingestionMode)
}

// CreateDocumentChunks creates a new document from pre-chunked text.
func (c *Client) CreateDocumentChunks(ctx context.Context, collectionRef string, chunks []string, metadata map[string]interface{}, ingestionMode string) (string, error) {
	if len(chunks) == 0 {
		return "", &ClientError{Message: "chunks are required"}
	}
	return c.createDocumentPayload(ctx, collectionRef, map[string]interface{}{"chunks": chunks}, metadata, ingestionMode)
}

func (c *Client) createDocumentPayload(ctx context.Context, collectionRef string, content, metadata map[string]interface{}, ingestionMode string) (string, error) {
	if err := requireArg("collectionRef", collectionRef); err != nil {
		return "", err
	}
	if ingestionMode == "" {
		ingestionMode = "fast"
	}
	payload := map[string]interface{}{
		"collection_ref": collectionRef,
		"engram_type":    "document",
		"metadata":       orEmpty(metadata),
		"ingestion_mode": ingestionMode,
	}
	for k, v := range content {
		payload[k] = v
	}
	raw, err := c.do(ctx, http.MethodPost, "/v1/memories", requestOptions{jsonBody: payload})
	if err != nil {
		return "", err
	}
	var w idWire
	if err := json.Unmarshal(unwrapResults(raw), &w); err != nil || w.value() == "" {
		return "", &ClientError{Message: "failed to create document: invalid response"}
	}
	return w.value(), nil
}

// GetMemory retrieves a memory by ID.
func (c *Client) GetMemory(ctx context.Context, memoryID string) (*MemoryResponse, error) {
	if err := requireArg("memoryId", memoryID); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, "/v1/memories/"+memoryID, requestOptions{})
	if err != nil {
		return nil, notFoundOr(err, "memory", memoryID)
	}
	return decodeMemory(unwrapResults(raw), nil)
}

// ListMemories retrieves memories from the given collections. collection_ids
// is sent as a repeated query parameter; metadata filters are serialized
// into a single JSON-valued parameter.
func (c *Client) ListMemories(ctx context.Context, opts ListMemoriesOptions) ([]MemoryResponse, error) {
	if len(opts.CollectionIDs) == 0 {
		return nil, &ClientError{Message: "collectionIds are required to list memories"}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	params := map[string]interface{}{
		"limit":          limit,
		"offset":         opts.Offset,
		"collection_ids": opts.CollectionIDs,
	}
	if len(opts.MetadataFilters) > 0 {
		filters, err := json.Marshal(opts.MetadataFilters)
		if err != nil {
			return nil, &ClientError{Message: "failed to encode metadata filters", Err: err}
		}
		params["metadata_filters"] = string(filters)
	}

	raw, err := c.do(ctx, http.MethodGet, "/v1/memories", requestOptions{query: queryValues(params)})
	if err != nil {
		return nil, err
	}

	items := asList(unwrapResults(raw))
	memories := make([]MemoryResponse, 0, len(items))
	for _, item := range items {
		mem, err := decodeMemory(item, opts.CollectionIDs)
		if err != nil {
			return nil, err
		}
		memories = append(memories, *mem)
	}
	return memories, nil
}

// UpdateMemory updates memory-level properties (name, metadata, collection
// associations) without touching content. At least one field must be set.
func (c *Client) UpdateMemory(ctx context.Context, memoryID string, upd MemoryUpdate) error {
	if err := requireArg("memoryId", memoryID); err != nil {
		return err
	}
	payload := map[string]interface{}{}
	if upd.Name != "" {
		payload["name"] = upd.Name
	}
	if upd.Metadata != nil {
		payload["metadata"] = upd.Metadata
		payload["merge_metadata"] = upd.MergeMetadata
	}
	if upd.CollectionIDs != nil {
		payload["collection_ids"] = upd.CollectionIDs
	}
	if len(payload) == 0 {
		return &ValidationError{
			Message: "at least one of name, metadata, or collectionIds must be provided",
		}
	}
	_, err := c.do(ctx, http.MethodPatch, "/v1/memories/"+memoryID, requestOptions{jsonBody: payload})
	if err != nil {
		return notFoundOr(err, "memory", memoryID)
	}
	return nil
}

// DeleteMemory deletes a single memory. The dedicated DELETE endpoint is
// tried first; older deployments only expose the bulk endpoint, so that is
// used as a fallback.
func (c *Client) DeleteMemory(ctx context.Context, memoryID string) error {
	if err := requireArg("memoryId", memoryID); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, "/v1/memories/"+memoryID, requestOptions{})
	if err == nil {
		return nil
	}
	payload := map[string]interface{}{"ids": memoryID}
	if _, ferr := c.do(ctx, http.MethodPost, "/v1/memories/delete", requestOptions{jsonBody: payload}); ferr == nil {
		return nil
	}
	return notFoundOr(err, "memory", memoryID)
}

// DeleteMemories deletes a batch of memories. The server's report of
// succeeded and failed ids is returned to the caller unmodified.
func (c *Client) DeleteMemories(ctx context.Context, memoryIDs []string) (*BulkDeleteResult, error) {
	if len(memoryIDs) == 0 {
		return nil, &ClientError{Message: "memoryIds are required"}
	}
	payload := map[string]interface{}{"ids": memoryIDs}
	raw, err := c.do(ctx, http.MethodPost, "/v1/memories/delete", requestOptions{jsonBody: payload})
	if err != nil {
		return nil, err
	}
	var result BulkDeleteResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &ClientError{Message: "malformed bulk delete response", Err: err}
	}
	return &result, nil
}

// UpdateChunk updates a single chunk or message within a memory.
func (c *Client) UpdateChunk(ctx context.Context, chunkID, content string, metadata map[string]interface{}) error {
	if err := requireArg("chunkId", chunkID); err != nil {
		return err
	}
	payload := map[string]interface{}{"content": content}
	if metadata != nil {
		payload["metadata"] = metadata
	}
	_, err := c.do(ctx, http.MethodPatch, "/v1/chunks/"+chunkID, requestOptions{jsonBody: payload})
	if err != nil {
		return notFoundOr(err, "chunk", chunkID)
	}
	return nil
}

// DeleteChunk deletes a single chunk or message within a memory.
func (c *Client) DeleteChunk(ctx context.Context, chunkID string) error {
	if err := requireArg("chunkId", chunkID); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, "/v1/chunks/"+chunkID, requestOptions{})
	if err != nil {
		return notFoundOr(err, "chunk", chunkID)
	}
	return nil
}

// addMultimodalOptions copies the optional processing model selections onto
// a write payload when the memory carries multimodal parts.
func addMultimodalOptions(payload map[string]interface{}, mem Memory) {
	if len(mem.Parts) == 0 {
		return
	}
	if mem.VisionModel != "" {
		payload["vision_model"] = mem.VisionModel
	}
	if mem.AudioModel != "" {
		payload["audio_model"] = mem.AudioModel
	}
	if mem.FastMode != nil {
		payload["fast_mode"] = *mem.FastMode
	}
}

// orEmpty copies a metadata map so payload mutation never touches caller
// state, substituting an empty map for nil.
func orEmpty(m map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range m {
		out[k] = v
	}
	return out
}
