package client

import "strings"

// Nebula API keys have the shape "<public>.<raw-secret>": exactly one dot,
// where the public part starts with a recognized key prefix. Anything else
// (a Supabase JWT, an OAuth access token) is sent as a bearer token instead.
// Detection is a pure function of the credential string so it stays
// unit-testable without any network dependency.

// IsAPIKey reports whether credential looks like a Nebula API key.
func IsAPIKey(credential string) bool {
	if strings.Count(credential, ".") != 1 {
		return false
	}
	public, raw, _ := strings.Cut(credential, ".")
	if raw == "" {
		return false
	}
	return strings.HasPrefix(public, "key_") || strings.HasPrefix(public, "neb_")
}

// authHeader returns the header name/value pair for the credential. The
// check runs on every request because the credential can be swapped
// mid-lifetime via SetAPIKey.
func authHeader(credential string) (name, value string) {
	if IsAPIKey(credential) {
		return "X-API-Key", credential
	}
	return "Authorization", "Bearer " + credential
}
