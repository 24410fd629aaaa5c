// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// from registries. Each registry has its own subpackage:
//
//   - [npm]: the npm registry (or any registry speaking its protocol)
//
// # Client Pattern
//
// Registry clients follow a consistent pattern:
//
//	client := npm.NewClient("", nil)               // default registry, default HTTP client
//	doc, err := client.FetchMetadata(ctx, "express") // one request, no cache
//
// Clients handle:
//   - URL construction and escaping of scoped names
//   - Status classification into [ErrNotFound], [ErrNetwork], [ErrMalformed]
//   - Marking transient failures with [httputil.RetryableError]
//
// Clients do not cache or retry. Retry policy belongs to the caller.
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all registry
// clients, including default headers and [observability.HTTPHooks] reporting.
//
// [npm]: github.com/matzehuels/deptree/pkg/integrations/npm
// [httputil.RetryableError]: github.com/matzehuels/deptree/pkg/httputil.RetryableError
// [observability.HTTPHooks]: github.com/matzehuels/deptree/pkg/observability.HTTPHooks
package integrations
