package client

import (
	"errors"
	"testing"
)

func TestNotFoundOr(t *testing.T) {
	notFound := &APIError{StatusCode: 404, Message: "missing"}
	err := notFoundOr(notFound, "memory", "mem-1")
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "memory" || nf.ID != "mem-1" {
		t.Fatalf("want NotFoundError, got %v", err)
	}

	server := &APIError{StatusCode: 500, Message: "boom"}
	if got := notFoundOr(server, "memory", "mem-1"); got != server {
		t.Fatalf("non-404 must pass through, got %v", got)
	}

	if got := notFoundOr(nil, "memory", "mem-1"); got != nil {
		t.Fatalf("nil must pass through, got %v", got)
	}
}

func TestClientErrorUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := &ClientError{Message: "request failed", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("Unwrap broken")
	}
	if IsTimeout(err) {
		t.Fatal("non-timeout flagged as timeout")
	}
}
