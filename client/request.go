package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// requestOptions selects the body encoding and query string for one call.
// At most one of jsonBody/form is set.
type requestOptions struct {
	query    url.Values
	jsonBody interface{}
	form     url.Values
}

// queryValues flattens params into URL query values. Slice values become
// repeated parameters preserving element order; nil values and empty strings
// are omitted entirely.
func queryValues(params map[string]interface{}) url.Values {
	values := url.Values{}
	for key, v := range params {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if val != "" {
				values.Add(key, val)
			}
		case []string:
			for _, item := range val {
				if item != "" {
					values.Add(key, item)
				}
			}
		case int:
			values.Add(key, strconv.Itoa(val))
		case int64:
			values.Add(key, strconv.FormatInt(val, 10))
		case bool:
			values.Add(key, strconv.FormatBool(val))
		case float64:
			values.Add(key, strconv.FormatFloat(val, 'f', -1, 64))
		default:
			values.Add(key, fmt.Sprintf("%v", val))
		}
	}
	return values
}

// do dispatches one HTTP call: it joins the base URL and path, attaches the
// query string and body, selects the auth header for the current credential,
// enforces the configured per-call timeout, and maps the response status
// onto the typed error taxonomy. Success is exactly HTTP 200 or 202.
//
// No retries happen here; every failure surfaces immediately.
func (c *Client) do(ctx context.Context, method, path string, opt requestOptions) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	apiKey, baseURL, timeout := c.snapshot()

	reqURL := baseURL + path
	if len(opt.query) > 0 {
		reqURL += "?" + opt.query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case opt.jsonBody != nil:
		payload, err := json.Marshal(opt.jsonBody)
		if err != nil {
			requestFailuresTotal.WithLabelValues("encode").Inc()
			return nil, &ClientError{Message: "failed to encode request body", Err: err}
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	case opt.form != nil:
		body = strings.NewReader(opt.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		requestFailuresTotal.WithLabelValues("encode").Inc()
		return nil, &ClientError{Message: "failed to build request", Err: err}
	}
	name, value := authHeader(apiKey)
	httpReq.Header.Set(name, value)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			requestFailuresTotal.WithLabelValues("timeout").Inc()
			return nil, &ClientError{
				Message: fmt.Sprintf("request timed out after %s", timeout),
				Timeout: true,
				Err:     err,
			}
		}
		requestFailuresTotal.WithLabelValues("network").Inc()
		return nil, &ClientError{
			Message: fmt.Sprintf("request to %s failed", baseURL),
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	requestsTotal.WithLabelValues(method, statusLabel(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		requestFailuresTotal.WithLabelValues("network").Inc()
		return nil, &ClientError{Message: "failed to read response body", Err: err}
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return raw, nil
	case http.StatusUnauthorized:
		return nil, &AuthenticationError{Message: "invalid API key"}
	case http.StatusTooManyRequests:
		return nil, &RateLimitError{Message: "rate limit exceeded"}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return nil, validationError(raw)
	default:
		errBody := parseErrorBody(raw)
		message := stringField(errBody, "message")
		if message == "" {
			message = fmt.Sprintf("API error: %d", resp.StatusCode)
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			ErrorBody:  errBody,
		}
	}
}

// parseErrorBody decodes an error payload, returning an empty map when the
// body is missing or not a JSON object.
func parseErrorBody(raw []byte) map[string]interface{} {
	errBody := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &errBody)
	}
	return errBody
}

func stringField(m map[string]interface{}, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// validationError builds a ValidationError from a 400/422 payload. The
// human-readable text comes from "message", then "detail" (serialized when
// not already a string), then a generic fallback.
func validationError(raw []byte) *ValidationError {
	errBody := parseErrorBody(raw)
	message := stringField(errBody, "message")
	if message == "" {
		switch detail := errBody["detail"].(type) {
		case string:
			message = detail
		case nil:
		default:
			if b, err := json.Marshal(detail); err == nil {
				message = string(b)
			}
		}
	}
	if message == "" {
		message = "validation error"
	}
	return &ValidationError{Message: message, Detail: errBody}
}
