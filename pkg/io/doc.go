// Package io reads and writes resolved dependency trees.
//
// # Tree JSON
//
// The primary format is the nested tree returned by the service:
//
//	{
//	  "name": "app",
//	  "version": "1.0.0",
//	  "dependencies": {
//	    "lib": {
//	      "name": "lib",
//	      "version": "2.1.0",
//	      "dependencies": {
//	        "util": {"name": "util", "version": "1.0.0", "dependencies": {}}
//	      }
//	    }
//	  }
//	}
//
// A dependency whose range matched no published version carries the raw
// range as its version and "unresolved": true.
//
// Use [WriteJSON] / [ReadJSON] for streams and [ExportJSON] / [ImportJSON]
// for files. [ReadJSON] rejects documents without a root name or version.
//
// # Graph JSON
//
// [WriteGraphJSON] flattens a tree into unique nodes and edges, one node per
// name@version, for tools that expect a node-link graph:
//
//	{
//	  "nodes": [{"id": "app@1.0.0", "name": "app", "version": "1.0.0"}, ...],
//	  "edges": [{"from": "app@1.0.0", "to": "lib@2.1.0"}, ...]
//	}
//
// # YAML
//
// [WriteYAML] writes the nested tree as YAML with the same field names.
package io
