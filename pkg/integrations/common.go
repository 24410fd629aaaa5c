package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 30 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")

	// ErrMalformed is returned when a registry response cannot be decoded
	// or lacks required fields.
	ErrMalformed = errors.New("malformed response")
)

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NormalizePkgName trims surrounding whitespace from a package name.
// Case is preserved: npm still serves legacy mixed-case packages.
func NormalizePkgName(name string) string {
	return strings.TrimSpace(name)
}

// PathEscape escapes a package name for use as a single registry path
// segment. Scoped names keep their "@" and encode the separating "/" as
// "%2F" ("@babel/core" -> "@babel%2Fcore").
func PathEscape(name string) string { return url.PathEscape(name) }

// JoinURL appends an escaped package name to a registry base URL.
func JoinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + PathEscape(name)
}
