package deps

import "context"

// Metadata is one package's registry record. It is immutable once fetched
// and lives only for the resolution that fetched it.
type Metadata struct {
	Name     string                   // Package name
	Versions map[string]VersionRecord // Published version -> record
	DistTags map[string]string        // Tag ("latest", "next") -> version
}

// VersionRecord is one published version of a package.
type VersionRecord struct {
	Version      string            // Concrete version string
	Dependencies map[string]string // Dependency name -> range (nil = none)
}

// Node is one entry of a resolved dependency tree.
//
// Version is always a concrete published version, except when Unresolved
// is set: then no published version satisfied the requested range and
// Version carries the raw range instead.
//
// Nodes are shared between every place the same name@version appears in a
// tree and must not be modified after resolution.
type Node struct {
	Name         string           `json:"name"`
	Version      string           `json:"version"`
	Dependencies map[string]*Node `json:"dependencies"`
	Unresolved   bool             `json:"unresolved,omitempty"`
}

// ID returns "name@version".
func (n *Node) ID() string { return n.Name + "@" + n.Version }

// Walk calls fn for every placement of every node below and including n,
// depth first in dependency-name order. depth is 0 for n itself. Walk stops
// descending into a node when fn returns false.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, name := range SortedNames(n.Dependencies) {
		n.Dependencies[name].walk(fn, depth+1)
	}
}

// Fetcher retrieves package metadata from a registry.
type Fetcher interface {
	// FetchMetadata returns every published version of the named package.
	// Implementations perform one lookup per call and must not cache.
	FetchMetadata(ctx context.Context, name string) (*Metadata, error)
}

// FetcherFunc adapts a plain function to [Fetcher].
type FetcherFunc func(ctx context.Context, name string) (*Metadata, error)

func (f FetcherFunc) FetchMetadata(ctx context.Context, name string) (*Metadata, error) {
	return f(ctx, name)
}
