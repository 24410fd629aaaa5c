package deps_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/deptree/pkg/deps"
)

func ExampleOptions_WithDefaults() {
	opts := deps.Options{MaxDepth: 10}.WithDefaults()

	fmt.Println("MaxDepth:", opts.MaxDepth)
	fmt.Println("MaxNodes:", opts.MaxNodes)
	// Output:
	// MaxDepth: 10
	// MaxNodes: 10000
}

func ExampleSelectVersion() {
	md := &deps.Metadata{
		Name: "lib",
		Versions: map[string]deps.VersionRecord{
			"1.0.0": {}, "1.2.0": {}, "1.5.3": {}, "2.0.0": {},
		},
		DistTags: map[string]string{"latest": "2.0.0"},
	}

	for _, rng := range []string{"^1.0.0", "latest", "^3.0.0"} {
		v, ok, _ := deps.SelectVersion(md, rng)
		fmt.Printf("%-7s -> %q %v\n", rng, v, ok)
	}
	// Output:
	// ^1.0.0  -> "1.5.3" true
	// latest  -> "2.0.0" true
	// ^3.0.0  -> "" false
}

func ExampleResolver_Tree() {
	registry := map[string]*deps.Metadata{
		"app": {Name: "app", Versions: map[string]deps.VersionRecord{
			"1.0.0": {Version: "1.0.0", Dependencies: map[string]string{"lib": "^2.0.0"}},
		}},
		"lib": {Name: "lib", Versions: map[string]deps.VersionRecord{
			"2.0.0": {Version: "2.0.0"},
			"2.1.0": {Version: "2.1.0", Dependencies: map[string]string{"util": "1.x", "gone": "^5.0.0"}},
		}},
		"util": {Name: "util", Versions: map[string]deps.VersionRecord{"1.0.0": {Version: "1.0.0"}}},
		"gone": {Name: "gone", Versions: map[string]deps.VersionRecord{"1.0.0": {Version: "1.0.0"}}},
	}
	fetcher := deps.FetcherFunc(func(_ context.Context, name string) (*deps.Metadata, error) {
		return registry[name], nil
	})

	root, err := deps.NewResolver(fetcher, deps.WithMaxConcurrent(4)).Tree(context.Background(), "app", "1.0.0")
	if err != nil {
		fmt.Println(err)
		return
	}

	root.Walk(func(n *deps.Node, depth int) bool {
		suffix := ""
		if n.Unresolved {
			suffix = " (unresolved)"
		}
		fmt.Printf("%*s%s@%s%s\n", depth*2, "", n.Name, n.Version, suffix)
		return true
	})
	// Output:
	// app@1.0.0
	//   lib@2.1.0
	//     gone@^5.0.0 (unresolved)
	//     util@1.0.0
}
