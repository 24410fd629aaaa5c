// Package cli implements the deptree command-line interface.
//
// # Commands
//
//   - resolve: resolve a published package version (or a local package.json)
//   - render: convert a saved JSON tree into other formats
//   - serve: run the HTTP service
//   - cache: clear the tree cache or print its directory
//   - config: show the effective configuration
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/deptree/config.toml (or --config)
// and overridden by flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every registry request, cache access and resolution through the
// observability hooks. Loggers are passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deptree/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks reports resolver, cache and registry events at debug level.
type logHooks struct {
	logger *log.Logger
}

func installLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetResolveHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnResolveStart(_ context.Context, pkg, version string) {
	h.logger.Debug("resolve start", "package", pkg, "version", version)
}

func (h logHooks) OnResolveComplete(_ context.Context, pkg, version string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "package", pkg, "version", version, "duration", d, "err", err)
		return
	}
	h.logger.Debug("resolve done", "package", pkg, "version", version, "nodes", nodes, "duration", d)
}

func (h logHooks) OnGateWait(_ context.Context, pkg string, waited time.Duration) {
	h.logger.Debug("queued for fetch slot", "package", pkg, "waited", waited)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("registry request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("registry response", "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("registry error", "path", path, "err", err)
}
