// Package pkg provides the core libraries for deptree, an npm dependency
// tree resolver.
//
// # Overview
//
// deptree resolves the full transitive dependency tree of a published npm
// package version: every dependency range is matched against the registry
// and replaced by the highest published version that satisfies it. The
// pkg directory is organized into these areas:
//
//  1. [deps] - Resolution (crawler, version selection, concurrency gate)
//  2. [integrations] - Registry clients (npm)
//  3. [cache] - Tree caches (file, Redis, MongoDB)
//  4. [io] and [render] - Serialization and visualization of trees
//  5. [pipeline] - Orchestration (resolve → cache → render)
//
// # Architecture
//
// The typical data flow:
//
//	npm registry / package.json
//	         ↓
//	    [deps] package (fetch metadata, select versions, assemble tree)
//	         ↓
//	    [pipeline] package (cache lookup and write-back)
//	         ↓
//	    [io] / [render] packages (JSON, YAML, DOT, SVG, terminal tree)
//
// # Quick Start
//
//	resolver := javascript.NewResolver(npm.DefaultRegistryURL)
//	root, err := resolver.Tree(ctx, "express", "4.18.2")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(termtree.Render(root, termtree.Options{MaxDepth: 2}))
//
// # Main Packages
//
// [deps] - The resolver. Registry metadata is fetched at most once per
// package name per resolution, fetches are bounded by a FIFO [deps.Gate],
// and repeated (name, range) pairs resolve to one shared subtree.
//
// [deps/javascript] - The npm [deps.Fetcher] and the package.json manifest
// parser.
//
// [integrations/npm] - HTTP client for npm-compatible registries.
//
// [cache] - Opt-in cache backends for finished trees: FileCache for the CLI,
// RedisCache and MongoCache for shared deployments, NullCache to disable
// caching.
//
// [observability] - Hooks for resolution, cache and HTTP events.
//
// [render/nodelink] - Graphviz node-link diagrams (DOT, SVG).
//
// [render/termtree] - Terminal tree output.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip Graphviz rendering
//	go test -tags integration ./pkg/...  # Include live registry tests
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/deps
// [deps/javascript]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/deps/javascript
// [integrations]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/integrations
// [integrations/npm]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/integrations/npm
// [cache]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/render/nodelink
// [render/termtree]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/render/termtree
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/deptree/pkg/pipeline
package pkg
