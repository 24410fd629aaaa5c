// Package server exposes dependency tree resolution over HTTP.
//
// # Routes
//
//	GET /package/{name}/{version}          tree for an unscoped package
//	GET /package/{scope}/{name}/{version}  tree for a scoped package (@scope/name)
//	GET /healthz                           liveness probe
//
// A successful resolution answers 200 with the tree as JSON:
//
//	{"name": "express", "version": "4.18.2", "dependencies": {...}}
//
// Failures answer {"error": {"code": "...", "message": "..."}} with a status
// derived from the error code (see [StatusFor]).
//
// # Caching
//
// Trees are resolved through a [pipeline.Runner], which stores completed
// trees in its cache under a key that includes the resolver limits. Identical requests that arrive while a resolution is
// running share its result instead of crawling the registry again. Every
// tree response carries an ETag so clients can revalidate with
// If-None-Match.
//
// [pipeline.Runner]: github.com/matzehuels/deptree/pkg/pipeline.Runner
package server
