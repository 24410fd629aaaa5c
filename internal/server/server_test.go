package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deptree/pkg/cache"
	"github.com/matzehuels/deptree/pkg/deps"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/pipeline"
)

// registry is an in-memory package index: name -> version -> dependencies.
type registry map[string]map[string]map[string]string

type fetcher struct {
	pkgs  registry
	fail  map[string]error
	delay time.Duration
	calls atomic.Int64
}

func (f *fetcher) FetchMetadata(ctx context.Context, name string) (*deps.Metadata, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.fail[name]; ok {
		return nil, err
	}
	versions, ok := f.pkgs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "package %s not found in registry", name)
	}
	md := &deps.Metadata{Name: name, Versions: map[string]deps.VersionRecord{}}
	for v, d := range versions {
		md.Versions[v] = deps.VersionRecord{Version: v, Dependencies: d}
	}
	return md, nil
}

var pkgs = registry{
	"app":          {"1.0.0": {"lib": "^2.0.0", "@scope/util": "~1.0.0"}},
	"lib":          {"2.0.0": nil, "2.3.1": nil, "3.0.0": nil},
	"@scope/util":  {"1.0.4": nil, "1.1.0": nil},
	"loop":         {"1.0.0": {"loop": "^1.0.0"}},
	"needs-broken": {"1.0.0": {"broken": "*"}},
}

func newRunner(f *fetcher, c cache.Cache) *pipeline.Runner {
	return pipeline.NewRunner(deps.NewResolver(f, deps.WithMaxConcurrent(4)), c, nil, log.New(io.Discard))
}

func newTestServer(t *testing.T, f *fetcher, opts ...Option) *httptest.Server {
	t.Helper()
	return serve(t, newRunner(f, nil), opts...)
}

func newCachedServer(t *testing.T, f *fetcher) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return serve(t, newRunner(f, fc))
}

func serve(t *testing.T, runner *pipeline.Runner, opts ...Option) *httptest.Server {
	t.Helper()
	s := New(runner, append([]Option{WithLogger(log.New(io.Discard))}, opts...)...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string, header ...string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &fetcher{pkgs: pkgs})
	resp, body := get(t, ts.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if string(body) != "{\"status\":\"ok\"}\n" {
		t.Errorf("body = %q", body)
	}
}

func TestTree(t *testing.T) {
	ts := newTestServer(t, &fetcher{pkgs: pkgs})
	resp, body := get(t, ts.URL+"/package/app/1.0.0")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("response should carry a request ID")
	}

	var root deps.Node
	if err := json.Unmarshal(body, &root); err != nil {
		t.Fatal(err)
	}
	if root.Name != "app" || root.Version != "1.0.0" {
		t.Errorf("root = %s@%s", root.Name, root.Version)
	}
	if got := root.Dependencies["lib"].Version; got != "2.3.1" {
		t.Errorf("lib = %s, want 2.3.1", got)
	}
	if got := root.Dependencies["@scope/util"].Version; got != "1.0.4" {
		t.Errorf("@scope/util = %s, want 1.0.4", got)
	}
}

func TestScopedTree(t *testing.T) {
	ts := newTestServer(t, &fetcher{pkgs: pkgs})
	for _, path := range []string{"/package/@scope/util/1.1.0", "/package/@scope%2Futil/1.1.0"} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, ts.URL+path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
			}
			var root deps.Node
			if err := json.Unmarshal(body, &root); err != nil {
				t.Fatal(err)
			}
			if root.Name != "@scope/util" {
				t.Errorf("name = %q", root.Name)
			}
		})
	}
}

func TestTreeErrors(t *testing.T) {
	f := &fetcher{
		pkgs: pkgs,
		fail: map[string]error{"broken": errors.New(errors.ErrCodeUpstream, "fetching broken")},
	}
	ts := newTestServer(t, f)

	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"unknown package", "/package/nope/1.0.0", 404, errors.ErrCodeNotFound},
		{"unknown version", "/package/app/9.9.9", 404, errors.ErrCodeVersionNotFound},
		{"invalid name", "/package/.hidden/1.0.0", 400, errors.ErrCodeInvalidPackage},
		{"scope without @", "/package/scope/util/1.0.0", 400, errors.ErrCodeInvalidPackage},
		{"cycle", "/package/loop/1.0.0", 422, errors.ErrCodeCycle},
		{"upstream", "/package/needs-broken/1.0.0", 502, errors.ErrCodeUpstream},
		{"unknown route", "/packages", 404, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (body %s)", resp.StatusCode, tt.status, body)
			}
			var eb errorBody
			if err := json.Unmarshal(body, &eb); err != nil {
				t.Fatalf("decode error body %q: %v", body, err)
			}
			if eb.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", eb.Error.Code, tt.code)
			}
			if eb.Error.Message == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidPackage, 400},
		{errors.ErrCodeInvalidInput, 400},
		{errors.ErrCodeNotFound, 404},
		{errors.ErrCodeVersionNotFound, 404},
		{errors.ErrCodeInvalidRange, 422},
		{errors.ErrCodeDepthExceeded, 422},
		{errors.ErrCodeTooManyNodes, 422},
		{errors.ErrCodeCycle, 422},
		{errors.ErrCodeUpstream, 502},
		{errors.ErrCodeTimeout, 504},
		{errors.ErrCodeInternal, 500},
		{"", 500},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.code); got != tt.want {
			t.Errorf("StatusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestTimeout(t *testing.T) {
	ts := newTestServer(t, &fetcher{pkgs: pkgs, delay: time.Second}, WithRequestTimeout(20*time.Millisecond))
	resp, body := get(t, ts.URL+"/package/app/1.0.0")
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504 (body %s)", resp.StatusCode, body)
	}
}

func TestCachedTree(t *testing.T) {
	f := &fetcher{pkgs: pkgs}
	ts := newCachedServer(t, f)

	first, body1 := get(t, ts.URL+"/package/app/1.0.0")
	calls := f.calls.Load()
	second, body2 := get(t, ts.URL+"/package/app/1.0.0")

	if first.Header.Get("X-Cache") != "MISS" || second.Header.Get("X-Cache") != "HIT" {
		t.Errorf("X-Cache = %q then %q, want MISS then HIT",
			first.Header.Get("X-Cache"), second.Header.Get("X-Cache"))
	}
	if f.calls.Load() != calls {
		t.Error("cached request should not reach the registry")
	}
	if string(body1) != string(body2) {
		t.Error("cached body differs from the resolved one")
	}
}

func TestETag(t *testing.T) {
	ts := newTestServer(t, &fetcher{pkgs: pkgs})

	resp, _ := get(t, ts.URL+"/package/lib/2.0.0")
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("response should carry an ETag")
	}

	resp, body := get(t, ts.URL+"/package/lib/2.0.0", "If-None-Match", etag)
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("status = %d, want 304", resp.StatusCode)
	}
	if len(body) != 0 {
		t.Errorf("304 should have no body, got %q", body)
	}

	resp, _ = get(t, ts.URL+"/package/lib/2.0.0", "If-None-Match", `"stale"`)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 for stale ETag", resp.StatusCode)
	}
}

func TestRequestIDEcho(t *testing.T) {
	ts := newTestServer(t, &fetcher{pkgs: pkgs})
	resp, _ := get(t, ts.URL+"/healthz", RequestIDHeader, "abc-123")
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("request ID = %q, want echoed abc-123", got)
	}
}

func TestConcurrentIdenticalRequests(t *testing.T) {
	f := &fetcher{pkgs: registry{"solo": {"1.0.0": nil}}, delay: 50 * time.Millisecond}
	ts := newCachedServer(t, f)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(ts.URL + "/package/solo/1.0.0")
			if err != nil {
				t.Error(err)
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d", resp.StatusCode)
			}
		}()
	}
	wg.Wait()

	if n := f.calls.Load(); n != 1 {
		t.Errorf("registry fetched %d times, want 1", n)
	}
}

func TestServeShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	s := New(newRunner(&fetcher{pkgs: pkgs}, nil), WithLogger(log.New(io.Discard)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil after shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
