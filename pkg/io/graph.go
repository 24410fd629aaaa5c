package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/deptree/pkg/deps"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	Unresolved bool   `json:"unresolved,omitempty"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Flatten returns one node per distinct name@version in the tree and one
// edge per distinct dependency relation, in depth-first order.
func Flatten(root *deps.Node) (nodes []*deps.Node, edges [][2]string) {
	seen := make(map[string]bool)
	seenEdge := make(map[[2]string]bool)

	var visit func(n *deps.Node)
	visit = func(n *deps.Node) {
		id := n.ID()
		if seen[id] {
			return
		}
		seen[id] = true
		nodes = append(nodes, n)
		for _, name := range deps.SortedNames(n.Dependencies) {
			child := n.Dependencies[name]
			e := [2]string{id, child.ID()}
			if !seenEdge[e] {
				seenEdge[e] = true
				edges = append(edges, e)
			}
			visit(child)
		}
	}
	visit(root)
	return nodes, edges
}

// WriteGraphJSON writes the tree as a flat node-link graph.
func WriteGraphJSON(root *deps.Node, w io.Writer) error {
	nodes, edges := Flatten(root)
	out := graph{
		Nodes: make([]node, len(nodes)),
		Edges: make([]edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = node{ID: n.ID(), Name: n.Name, Version: n.Version, Unresolved: n.Unresolved}
	}
	for i, e := range edges {
		out.Edges[i] = edge{From: e[0], To: e[1]}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
