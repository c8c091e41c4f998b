package client

import (
	"fmt"

	"github.com/google/uuid"
)

// IsUUID reports whether s parses as a UUID. Memory, chunk, and collection
// IDs are server-generated UUIDs; collection references may alternatively be
// human-readable names.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// requireArg returns a ClientError when a required argument is empty.
func requireArg(name, value string) error {
	if value == "" {
		return &ClientError{Message: fmt.Sprintf("%s is required", name)}
	}
	return nil
}

// validAuthority reports whether an optional authority score is present and
// inside [0,1]. Out-of-range values are dropped rather than persisted.
func validAuthority(a *float64) (float64, bool) {
	if a == nil {
		return 0, false
	}
	if *a < 0.0 || *a > 1.0 {
		return 0, false
	}
	return *a, true
}
