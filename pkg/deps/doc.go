// Package deps resolves transitive dependency trees from registry metadata.
//
// # Overview
//
// Given a package name and an exact version, a [Resolver] fetches the
// package's metadata, reads that version's declared dependencies, picks the
// best published version for every dependency range, and repeats until the
// whole tree is known. The result is a [Node] tree:
//
//	{name, version, dependencies: {name: Node, ...}}
//
// # Resolving
//
//	r := deps.NewResolver(javascript.NewFetcher(client),
//	    deps.WithMaxConcurrent(100),
//	    deps.WithOptions(deps.Options{MaxDepth: 20}),
//	)
//	root, err := r.Tree(ctx, "express", "4.18.2")
//
// [Resolver.ResolveRoot] returns only the root's dependency map and
// [Resolver.Resolve] resolves a single (name, range) pair.
//
// # Version Selection
//
// [SelectVersion] uses semver constraints (^, ~, x, *, hyphen ranges, ||).
// A range equal to one of the package's dist-tags (for example "latest")
// selects the tagged version. When nothing matches, or the range is empty,
// the dependency becomes an unresolved node whose Version is the raw range
// and whose dependency map is empty. Ranges that are not valid constraints
// fail the resolution with INVALID_RANGE.
//
// # Concurrency
//
// Every registry fetch, at any depth, first takes a slot on the resolver's
// [Gate]. The gate is shared across concurrent calls on the same Resolver
// and admits waiters in arrival order. Fetches run in their own
// goroutines; the bookkeeping of which (name, range) pairs are known, and
// the tree assembly afterwards, happens on the calling goroutine.
//
// Within one call a package's metadata is fetched once, each (name, range)
// pair is resolved once, and each name@version subtree is built once and
// shared by all of its placements. Nothing is kept between calls.
//
// # Failures
//
// The first failure cancels everything still running and is returned; no
// partial tree is produced. Besides registry errors the resolver enforces
// [Options]:
//
//   - MaxDepth (default 50): DEPTH_EXCEEDED
//   - MaxNodes (default 10000 placements): TOO_MANY_NODES
//
// and rejects a name@version that depends on itself with CYCLE_DETECTED.
//
// Resolver does not retry. Wrap the fetcher with [WithRetry] to retry
// transient registry failures.
package deps
