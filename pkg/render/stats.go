package render

import "github.com/matzehuels/deptree/pkg/deps"

// Stats summarizes a resolved tree.
type Stats struct {
	Nodes      int `json:"nodes"`      // Placements, root included
	Unique     int `json:"unique"`     // Distinct name@version pairs
	Depth      int `json:"depth"`      // Deepest level below the root
	Unresolved int `json:"unresolved"` // Placements with no matching version
}

// Summarize computes [Stats] for root.
func Summarize(root *deps.Node) Stats {
	var s Stats
	seen := make(map[string]bool)
	root.Walk(func(n *deps.Node, depth int) bool {
		s.Nodes++
		s.Depth = max(s.Depth, depth)
		if n.Unresolved {
			s.Unresolved++
		}
		if id := n.ID(); !seen[id] {
			seen[id] = true
			s.Unique++
		}
		return true
	})
	return s
}
