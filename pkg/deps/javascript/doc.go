// Package javascript connects the resolver to the npm registry.
//
// # Registry Resolution
//
// [Fetcher] adapts the [npm] client to [deps.Fetcher], translating registry
// failures into NOT_FOUND and UPSTREAM_ERROR:
//
//	r := javascript.NewResolver("", deps.WithMaxConcurrent(50))
//	root, err := r.Tree(ctx, "express", "4.18.2")
//
// Only the "dependencies" field of each published version is followed;
// devDependencies, peerDependencies and optionalDependencies are ignored.
//
// # Manifest Parsing
//
// [PackageJSON] reads a local package.json so that an unpublished project
// can be resolved with [deps.Resolver.ResolveDependencies]:
//
//	m, _ := (&javascript.PackageJSON{}).Parse("package.json")
//	root, err := r.ResolveDependencies(ctx, m.Name, m.Version, m.Dependencies)
//
// [npm]: github.com/matzehuels/deptree/pkg/integrations/npm
// [deps.Fetcher]: github.com/matzehuels/deptree/pkg/deps.Fetcher
package javascript
