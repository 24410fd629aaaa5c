// Package httputil provides retry helpers for registry HTTP traffic.
//
// # Retry
//
// Registry clients never retry on their own. They mark transient failures
// (transport errors, 5xx responses, 429 rate limits) by wrapping them in
// [RetryableError], and callers that want a retry policy wrap the call:
//
//	err := httputil.Retry(ctx, httputil.Policy{Attempts: 3, Delay: time.Second}, func() error {
//	    return client.Do(ctx)
//	})
//
// Errors that are not wrapped in [RetryableError] are returned immediately.
// The delay doubles after each failed attempt and is capped at
// [Policy.MaxDelay] when set.
package httputil
