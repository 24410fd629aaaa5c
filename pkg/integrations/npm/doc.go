// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package fetches package documents ("packuments") from the npm
// registry (https://registry.npmjs.org) or any registry that speaks the
// same protocol, such as Verdaccio or a private mirror.
//
// # Usage
//
//	client := npm.NewClient("", nil)
//
//	doc, err := client.FetchMetadata(ctx, "express")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for version, m := range doc.Versions {
//	    fmt.Println(version, m.Dependencies)
//	}
//
// # Packument
//
// [FetchMetadata] returns a [Packument] containing:
//
//   - Name: the package name as the registry reports it
//   - DistTags: tag -> version ("latest", "next", ...)
//   - Versions: version -> [Manifest] with its "dependencies" ranges
//
// The client requests the abbreviated document format, so fields such as
// readme and description are not present. devDependencies,
// peerDependencies and optionalDependencies are ignored.
//
// # Caching and Retry
//
// None. Each call performs exactly one request. Transient failures are
// marked retryable for the caller; see the httputil package.
package npm
