package deps

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/deptree/pkg/errors"
)

// graph describes a fake registry: package -> version -> dependency ranges.
type graph map[string]map[string]map[string]string

// fakeRegistry is an in-memory Fetcher that records how often each package
// is fetched and how many fetches overlap.
type fakeRegistry struct {
	pkgs  map[string]*Metadata
	delay time.Duration
	slow  map[string]time.Duration
	fail  map[string]error

	mu       sync.Mutex
	calls    map[string]int
	inFlight int
	peak     int
}

func newFakeRegistry(g graph) *fakeRegistry {
	f := &fakeRegistry{
		pkgs:  make(map[string]*Metadata, len(g)),
		slow:  make(map[string]time.Duration),
		fail:  make(map[string]error),
		calls: make(map[string]int),
	}
	for name, versions := range g {
		md := &Metadata{Name: name, Versions: make(map[string]VersionRecord, len(versions))}
		for v, d := range versions {
			md.Versions[v] = VersionRecord{Version: v, Dependencies: d}
		}
		f.pkgs[name] = md
	}
	return f
}

func (f *fakeRegistry) FetchMetadata(ctx context.Context, name string) (*Metadata, error) {
	f.mu.Lock()
	f.calls[name]++
	f.inFlight++
	f.peak = max(f.peak, f.inFlight)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	delay := f.delay
	if d, ok := f.slow[name]; ok {
		delay = d
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := f.fail[name]; err != nil {
		return nil, err
	}
	md, ok := f.pkgs[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "package %s not found", name)
	}
	return md, nil
}

func (f *fakeRegistry) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRegistry) Peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.peak
}
