package client

import (
	"context"
	"net/http"
)

// Collection operations - all methods operate directly on Client

// CreateCollection creates a new collection.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) (*Collection, error) {
	if err := requireArg("name", req.Name); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "/v1/collections", requestOptions{jsonBody: req})
	if err != nil {
		return nil, err
	}
	return decodeCollection(unwrapResults(raw))
}

// GetCollection retrieves a collection by ID.
func (c *Client) GetCollection(ctx context.Context, collectionID string) (*Collection, error) {
	if err := requireArg("collectionId", collectionID); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, "/v1/collections/"+collectionID, requestOptions{})
	if err != nil {
		return nil, notFoundOr(err, "collection", collectionID)
	}
	return decodeCollection(unwrapResults(raw))
}

// GetCollectionByName retrieves a collection via the dedicated name lookup
// endpoint.
func (c *Client) GetCollectionByName(ctx context.Context, name string) (*Collection, error) {
	if err := requireArg("name", name); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, "/v1/collections/name/"+name, requestOptions{})
	if err != nil {
		return nil, notFoundOr(err, "collection", name)
	}
	return decodeCollection(unwrapResults(raw))
}

// ListCollections returns collections with limit/offset pagination. The
// backend may answer with a wrapped list, a bare list, or a single object;
// all three shapes are accepted.
func (c *Client) ListCollections(ctx context.Context, limit, offset int) ([]Collection, error) {
	if limit <= 0 {
		limit = 100
	}
	query := queryValues(map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	raw, err := c.do(ctx, http.MethodGet, "/v1/collections", requestOptions{query: query})
	if err != nil {
		return nil, err
	}

	items := asList(unwrapResults(raw))
	collections := make([]Collection, 0, len(items))
	for _, item := range items {
		col, err := decodeCollection(item)
		if err != nil {
			return nil, err
		}
		collections = append(collections, *col)
	}
	return collections, nil
}

// UpdateCollection updates a collection's name, description, or metadata.
func (c *Client) UpdateCollection(ctx context.Context, collectionID string, req UpdateCollectionRequest) (*Collection, error) {
	if err := requireArg("collectionId", collectionID); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "/v1/collections/"+collectionID, requestOptions{jsonBody: req})
	if err != nil {
		return nil, notFoundOr(err, "collection", collectionID)
	}
	return decodeCollection(unwrapResults(raw))
}

// DeleteCollection deletes a collection.
func (c *Client) DeleteCollection(ctx context.Context, collectionID string) error {
	if err := requireArg("collectionId", collectionID); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodDelete, "/v1/collections/"+collectionID, requestOptions{})
	if err != nil {
		return notFoundOr(err, "collection", collectionID)
	}
	return nil
}
