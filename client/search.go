package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// SearchOptions tunes a Search call. CollectionIDs may be UUIDs or names;
// empty entries are dropped. A zero Limit defaults to 10. Filters use the
// backend's Mongo-style operators; SearchSettings carries weights and
// result-shaping flags.
type SearchOptions struct {
	CollectionIDs  []string
	Limit          int
	Filters        map[string]interface{}
	SearchSettings map[string]interface{}
}

// RecallEntity is one activated knowledge-graph entity in a recall.
type RecallEntity struct {
	EntityID         string                 `json:"entity_id"`
	EntityName       string                 `json:"entity_name"`
	EntityCategory   string                 `json:"entity_category,omitempty"`
	ActivationScore  float64                `json:"activation_score"`
	ActivationReason string                 `json:"activation_reason,omitempty"`
	TraversalDepth   int                    `json:"traversal_depth,omitempty"`
	Profile          map[string]interface{} `json:"profile,omitempty"`
}

// RecallFact is one activated fact in a recall.
type RecallFact struct {
	FactID               string   `json:"fact_id"`
	EntityID             string   `json:"entity_id,omitempty"`
	EntityName           string   `json:"entity_name,omitempty"`
	FacetName            string   `json:"facet_name,omitempty"`
	Subject              string   `json:"subject,omitempty"`
	Predicate            string   `json:"predicate,omitempty"`
	ObjectValue          string   `json:"object_value,omitempty"`
	ActivationScore      float64  `json:"activation_score"`
	ExtractionConfidence float64  `json:"extraction_confidence,omitempty"`
	CorroborationCount   int      `json:"corroboration_count,omitempty"`
	SourceChunkIDs       []string `json:"source_chunk_ids,omitempty"`
}

// RecallUtterance is one activated utterance (text chunk) in a recall.
type RecallUtterance struct {
	ChunkID           string                 `json:"chunk_id"`
	Text              string                 `json:"text"`
	ActivationScore   float64                `json:"activation_score"`
	SpeakerName       string                 `json:"speaker_name,omitempty"`
	SourceRole        string                 `json:"source_role,omitempty"`
	Timestamp         string                 `json:"timestamp,omitempty"`
	DisplayName       string                 `json:"display_name,omitempty"`
	SupportingFactIDs []string               `json:"supporting_fact_ids,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

// MemoryRecall is the hierarchical search result: activated entities, their
// facts, and the underlying utterances, plus the cross-reference maps.
type MemoryRecall struct {
	Query                string                 `json:"query"`
	Entities             []RecallEntity         `json:"entities"`
	Facts                []RecallFact           `json:"facts"`
	Utterances           []RecallUtterance      `json:"utterances"`
	FactToChunks         map[string][]string    `json:"fact_to_chunks"`
	EntityToFacts        map[string][]string    `json:"entity_to_facts"`
	RetrievedAt          string                 `json:"retrieved_at"`
	Focus                map[string]interface{} `json:"focus,omitempty"`
	TotalTraversalTimeMs *float64               `json:"total_traversal_time_ms,omitempty"`
	QueryIntent          string                 `json:"query_intent,omitempty"`
}

// Search runs a semantic search across the given collections and returns
// the hierarchical memory recall.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (*MemoryRecall, error) {
	if err := requireArg("query", query); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &SearchOptions{}
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 10
	}

	payload := map[string]interface{}{
		"query": query,
		"limit": limit,
	}
	ids := make([]string, 0, len(opts.CollectionIDs))
	for _, id := range opts.CollectionIDs {
		if strings.TrimSpace(id) != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		payload["collection_ids"] = ids
	}
	if len(opts.Filters) > 0 {
		payload["filters"] = opts.Filters
	}
	if len(opts.SearchSettings) > 0 {
		payload["search_settings"] = opts.SearchSettings
	}

	raw, err := c.do(ctx, http.MethodPost, "/v1/retrieval/search", requestOptions{jsonBody: payload})
	if err != nil {
		return nil, err
	}

	recall := &MemoryRecall{
		Query:         query,
		Entities:      []RecallEntity{},
		Facts:         []RecallFact{},
		Utterances:    []RecallUtterance{},
		FactToChunks:  map[string][]string{},
		EntityToFacts: map[string][]string{},
	}
	if err := json.Unmarshal(unwrapResults(raw), recall); err != nil {
		return nil, &ClientError{Message: "malformed search response", Err: err}
	}
	if recall.Query == "" {
		recall.Query = query
	}
	return recall, nil
}

//--------------------------------------------------------------------
// Graph search results
//--------------------------------------------------------------------

// GraphResultType discriminates the payload variant of a graph search
// result.
type GraphResultType string

const (
	GraphResultEntity       GraphResultType = "entity"
	GraphResultRelationship GraphResultType = "relationship"
	GraphResultCommunity    GraphResultType = "community"
)

// ParseGraphResultType parses the result_type tag case-insensitively.
// Missing or unrecognized tags default to entity.
func ParseGraphResultType(s string) GraphResultType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(GraphResultRelationship):
		return GraphResultRelationship
	case string(GraphResultCommunity):
		return GraphResultCommunity
	default:
		return GraphResultEntity
	}
}

// GraphEntityResult is the entity payload variant.
type GraphEntityResult struct {
	ID          string                 `json:"id,omitempty"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// GraphRelationshipResult is the relationship payload variant.
type GraphRelationshipResult struct {
	ID          string                 `json:"id,omitempty"`
	Subject     string                 `json:"subject"`
	Predicate   string                 `json:"predicate"`
	Object      string                 `json:"object"`
	SubjectID   string                 `json:"subject_id,omitempty"`
	ObjectID    string                 `json:"object_id,omitempty"`
	Description string                 `json:"description,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// GraphCommunityResult is the community payload variant.
type GraphCommunityResult struct {
	ID       string                 `json:"id,omitempty"`
	Name     string                 `json:"name"`
	Summary  string                 `json:"summary"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchResult is a single search hit: either a text chunk (Content set) or
// a graph result (GraphType set and exactly one of Entity, Relationship,
// Community populated). ID is the chunk id; MemoryID the parent container.
type SearchResult struct {
	ID       string                 `json:"id"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	MemoryID string                 `json:"memory_id,omitempty"`
	OwnerID  string                 `json:"owner_id,omitempty"`

	Content string `json:"content,omitempty"`

	GraphType    GraphResultType          `json:"graph_result_type,omitempty"`
	Entity       *GraphEntityResult       `json:"graph_entity,omitempty"`
	Relationship *GraphRelationshipResult `json:"graph_relationship,omitempty"`
	Community    *GraphCommunityResult    `json:"graph_community,omitempty"`
	ChunkIDs     []string                 `json:"chunk_ids,omitempty"`

	SourceRole  string     `json:"source_role,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
}

// searchResultWire is the raw graph/chunk result envelope.
type searchResultWire struct {
	ID          string                 `json:"id"`
	ChunkID     string                 `json:"chunk_id"`
	ResultType  string                 `json:"result_type"`
	Content     json.RawMessage        `json:"content"`
	Text        string                 `json:"text"`
	Score       float64                `json:"score"`
	Metadata    map[string]interface{} `json:"metadata"`
	MemoryID    string                 `json:"memory_id"`
	EngramID    string                 `json:"engram_id"`
	OwnerID     string                 `json:"owner_id"`
	ChunkIDs    []string               `json:"chunk_ids"`
	SourceRole  string                 `json:"source_role"`
	Timestamp   string                 `json:"timestamp"`
	DisplayName string                 `json:"display_name"`
}

func (w searchResultWire) base() SearchResult {
	id := w.ID
	if id == "" {
		id = w.ChunkID
	}
	memoryID := w.MemoryID
	if memoryID == "" {
		memoryID = w.EngramID
	}
	return SearchResult{
		ID:          id,
		Score:       w.Score,
		Metadata:    w.Metadata,
		MemoryID:    memoryID,
		OwnerID:     w.OwnerID,
		ChunkIDs:    w.ChunkIDs,
		SourceRole:  w.SourceRole,
		Timestamp:   parseTimestamp(w.Timestamp),
		DisplayName: w.DisplayName,
	}
}

// DecodeChunkResult decodes a chunk-style search result. Text may arrive
// under "content" or "text".
func DecodeChunkResult(raw json.RawMessage) (*SearchResult, error) {
	var w searchResultWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &ClientError{Message: "malformed search result", Err: err}
	}
	result := w.base()
	var content string
	if len(w.Content) > 0 {
		_ = json.Unmarshal(w.Content, &content)
	}
	if content == "" {
		content = w.Text
	}
	result.Content = content
	return &result, nil
}

// DecodeGraphResult decodes a graph-style search result, discriminating the
// payload by its result_type tag.
func DecodeGraphResult(raw json.RawMessage) (*SearchResult, error) {
	var w searchResultWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &ClientError{Message: "malformed graph result", Err: err}
	}
	result := w.base()
	result.GraphType = ParseGraphResultType(w.ResultType)

	var decodeErr error
	switch result.GraphType {
	case GraphResultRelationship:
		result.Relationship, decodeErr = decodeGraphRelationship(w.Content)
	case GraphResultCommunity:
		result.Community, decodeErr = decodeGraphCommunity(w.Content)
	default:
		result.Entity, decodeErr = decodeGraphEntity(w.Content)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &result, nil
}

func decodeGraphEntity(raw json.RawMessage) (*GraphEntityResult, error) {
	entity := &GraphEntityResult{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, entity); err != nil {
			return nil, &ClientError{Message: "malformed graph entity payload", Err: err}
		}
	}
	return entity, nil
}

func decodeGraphRelationship(raw json.RawMessage) (*GraphRelationshipResult, error) {
	rel := &GraphRelationshipResult{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, rel); err != nil {
			return nil, &ClientError{Message: "malformed graph relationship payload", Err: err}
		}
	}
	return rel, nil
}

func decodeGraphCommunity(raw json.RawMessage) (*GraphCommunityResult, error) {
	community := &GraphCommunityResult{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, community); err != nil {
			return nil, &ClientError{Message: "malformed graph community payload", Err: err}
		}
	}
	return community, nil
}
