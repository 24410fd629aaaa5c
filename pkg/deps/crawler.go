package deps

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/observability"
)

// rangeKey identifies one requested (name, range) pair. Each key is resolved
// at most once per request no matter how many parents ask for it.
type rangeKey struct {
	name string
	rng  string
}

type job struct {
	key   rangeKey
	depth int
}

// resolution is the arena entry for a rangeKey.
type resolution struct {
	version    string
	deps       map[string]string
	unresolved bool
}

type metaState struct {
	md      *Metadata
	waiters []job
}

type result struct {
	name string
	md   *Metadata
	err  error
}

// crawler discovers every (name, range) pair reachable from its seeds.
// Fetches run in their own goroutines behind the shared gate; everything
// else, including the arena, is owned by the goroutine calling crawl.
type crawler struct {
	ctx     context.Context
	cancel  context.CancelFunc
	fetcher Fetcher
	gate    *Gate
	opts    Options

	meta  map[string]*metaState
	arena map[rangeKey]*resolution

	results chan result
	pending int
	wg      sync.WaitGroup
}

func newCrawler(parent context.Context, fetcher Fetcher, gate *Gate, opts Options) *crawler {
	ctx, cancel := context.WithCancel(parent)
	return &crawler{
		ctx:     ctx,
		cancel:  cancel,
		fetcher: fetcher,
		gate:    gate,
		opts:    opts,
		meta:    make(map[string]*metaState),
		arena:   make(map[rangeKey]*resolution),
		results: make(chan result),
	}
}

// fetch performs one gated metadata lookup on the calling goroutine.
func (c *crawler) fetch(name string) (*Metadata, error) {
	start := time.Now()
	var md *Metadata
	err := c.gate.Do(c.ctx, func() error {
		if waited := time.Since(start); waited > time.Millisecond {
			observability.Resolve().OnGateWait(c.ctx, name, waited)
		}
		c.opts.Logger("fetch %s", name)
		var err error
		md, err = c.fetcher.FetchMetadata(c.ctx, name)
		return err
	})
	return md, err
}

// remember records metadata fetched outside the crawl loop, such as the
// root package's, so it is not requested again.
func (c *crawler) remember(name string, md *Metadata) {
	c.meta[name] = &metaState{md: md}
}

func (c *crawler) start(name string) {
	c.pending++
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		md, err := c.fetch(name)
		if err == nil && md == nil {
			err = errors.New(errors.ErrCodeUpstream, "registry returned no metadata for %s", name)
		}
		select {
		case c.results <- result{name: name, md: md, err: err}:
		case <-c.ctx.Done():
		}
	}()
}

// crawl resolves seeds and everything they reach. The caller must call
// close once crawl returns.
func (c *crawler) crawl(seeds []job) error {
	for _, j := range seeds {
		if err := c.enqueue(j); err != nil {
			return err
		}
	}

	for c.pending > 0 {
		select {
		case r := <-c.results:
			c.pending--
			if r.err != nil {
				return r.err
			}
			if err := c.arrived(r.name, r.md); err != nil {
				return err
			}
		case <-c.ctx.Done():
			return c.ctx.Err()
		}
	}
	return nil
}

// close abandons queued and in-flight fetches and waits for their
// goroutines to exit.
func (c *crawler) close() {
	c.cancel()
	c.wg.Wait()
}

func (c *crawler) enqueue(j job) error {
	if j.depth > c.opts.MaxDepth {
		return errors.New(errors.ErrCodeDepthExceeded,
			"%s@%s is nested deeper than %d levels", j.key.name, j.key.rng, c.opts.MaxDepth)
	}
	if _, seen := c.arena[j.key]; seen {
		return nil
	}
	if len(c.arena) >= c.opts.MaxNodes {
		return errors.New(errors.ErrCodeTooManyNodes,
			"more than %d distinct dependencies reached (at %s)", c.opts.MaxNodes, j.key.name)
	}
	c.arena[j.key] = &resolution{}

	st, ok := c.meta[j.key.name]
	if !ok {
		st = &metaState{}
		c.meta[j.key.name] = st
		c.start(j.key.name)
	}
	if st.md == nil {
		st.waiters = append(st.waiters, j)
		return nil
	}
	return c.settle(j, st.md)
}

func (c *crawler) arrived(name string, md *Metadata) error {
	st := c.meta[name]
	st.md = md
	waiters := st.waiters
	st.waiters = nil
	for _, j := range waiters {
		if err := c.settle(j, md); err != nil {
			return err
		}
	}
	return nil
}

// settle picks the version for j and queues that version's dependencies.
func (c *crawler) settle(j job, md *Metadata) error {
	res := c.arena[j.key]
	version, ok, err := SelectVersion(md, j.key.rng)
	if err != nil {
		return err
	}
	if !ok {
		c.opts.Logger("no version of %s matches %q", j.key.name, j.key.rng)
		res.version = j.key.rng
		res.unresolved = true
		return nil
	}

	res.version = version
	res.deps = md.Versions[version].Dependencies
	for _, name := range SortedNames(res.deps) {
		next := job{key: rangeKey{name: name, rng: res.deps[name]}, depth: j.depth + 1}
		if err := c.enqueue(next); err != nil {
			return err
		}
	}
	return nil
}

// assembler turns a finished arena into an immutable tree. Subtrees are
// built once per name@version and shared by every placement.
type assembler struct {
	arena  map[rangeKey]*resolution
	opts   Options
	memo   map[string]subtree
	path   []string
	onPath map[string]bool
}

type subtree struct {
	node   *Node
	size   int // placements, including the subtree root
	height int // levels, including the subtree root
}

func newAssembler(arena map[rangeKey]*resolution, opts Options) *assembler {
	return &assembler{
		arena:  arena,
		opts:   opts,
		memo:   make(map[string]subtree),
		onPath: make(map[string]bool),
	}
}

func (a *assembler) build(key rangeKey, depth int) (subtree, error) {
	res := a.arena[key]
	if res == nil {
		return subtree{}, errors.New(errors.ErrCodeInternal, "%s@%s was never resolved", key.name, key.rng)
	}
	if res.unresolved {
		if depth > a.opts.MaxDepth {
			return subtree{}, a.tooDeep(key.name + "@" + key.rng)
		}
		node := &Node{Name: key.name, Version: key.rng, Dependencies: map[string]*Node{}, Unresolved: true}
		return subtree{node: node, size: 1, height: 1}, nil
	}
	return a.buildVersion(key.name, res.version, res.deps, depth)
}

func (a *assembler) buildVersion(name, version string, deps map[string]string, depth int) (subtree, error) {
	id := name + "@" + version
	if a.onPath[id] {
		return subtree{}, errors.New(errors.ErrCodeCycle,
			"dependency cycle: %s -> %s", strings.Join(a.path, " -> "), id)
	}
	if depth > a.opts.MaxDepth {
		return subtree{}, a.tooDeep(id)
	}
	if st, ok := a.memo[id]; ok {
		if depth+st.height-1 > a.opts.MaxDepth {
			return subtree{}, a.tooDeep(id)
		}
		return st, nil
	}

	a.onPath[id] = true
	a.path = append(a.path, id)
	defer func() {
		delete(a.onPath, id)
		a.path = a.path[:len(a.path)-1]
	}()

	node := &Node{Name: name, Version: version, Dependencies: make(map[string]*Node, len(deps))}
	st := subtree{node: node, size: 1, height: 1}
	for _, dep := range SortedNames(deps) {
		child, err := a.build(rangeKey{name: dep, rng: deps[dep]}, depth+1)
		if err != nil {
			return subtree{}, err
		}
		node.Dependencies[dep] = child.node
		st.size += child.size
		st.height = max(st.height, child.height+1)
		if st.size > a.opts.MaxNodes {
			return subtree{}, errors.New(errors.ErrCodeTooManyNodes,
				"tree under %s has more than %d nodes", id, a.opts.MaxNodes)
		}
	}

	a.memo[id] = st
	return st, nil
}

func (a *assembler) tooDeep(id string) error {
	return errors.New(errors.ErrCodeDepthExceeded,
		"%s is nested deeper than %d levels below %s", id, a.opts.MaxDepth, a.rootID())
}

func (a *assembler) rootID() string {
	if len(a.path) == 0 {
		return "the root"
	}
	return a.path[0]
}
