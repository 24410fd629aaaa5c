// Package termtree prints dependency trees for the terminal, in the spirit
// of npm ls: one line per placement, indented with box-drawing guides.
//
// A package version whose dependencies were already printed elsewhere in
// the tree is shown once more with a "deduped" marker instead of being
// expanded again.
package termtree

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/deptree/pkg/deps"
)

// Options configures terminal tree output.
type Options struct {
	// MaxDepth stops expanding below this level. Zero prints everything.
	MaxDepth int
	// Expand prints repeated subtrees in full instead of marking them deduped.
	Expand bool
	// Plain disables colors.
	Plain bool
}

type styles struct {
	root, name, version, unresolved, marker, guide lipgloss.Style
}

func newStyles(plain bool) styles {
	if plain {
		s := lipgloss.NewStyle()
		return styles{s, s, s, s, s, s}
	}
	return styles{
		root:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36")),
		name:       lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		version:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		unresolved: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		marker:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		guide:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginRight(1),
	}
}

// Render returns the tree under root as text.
func Render(root *deps.Node, opts Options) string {
	st := newStyles(opts.Plain)
	r := &renderer{opts: opts, st: st, expanded: make(map[string]bool)}

	t := tree.Root(st.root.Render(root.ID())).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(st.guide)
	r.expanded[root.ID()] = true
	r.children(t, root, 1)
	return t.String()
}

type renderer struct {
	opts     Options
	st       styles
	expanded map[string]bool
}

func (r *renderer) children(t *tree.Tree, n *deps.Node, depth int) {
	if r.opts.MaxDepth > 0 && depth > r.opts.MaxDepth {
		if len(n.Dependencies) > 0 {
			t.Child(r.st.marker.Render("…"))
		}
		return
	}
	for _, name := range deps.SortedNames(n.Dependencies) {
		child := n.Dependencies[name]
		label := r.label(child)
		if len(child.Dependencies) == 0 {
			t.Child(label)
			continue
		}
		if !r.opts.Expand && r.expanded[child.ID()] {
			t.Child(label + " " + r.st.marker.Render("deduped"))
			continue
		}
		r.expanded[child.ID()] = true
		sub := tree.Root(label)
		r.children(sub, child, depth+1)
		t.Child(sub)
	}
}

func (r *renderer) label(n *deps.Node) string {
	if n.Unresolved {
		return r.st.name.Render(n.Name) + r.st.unresolved.Render("@"+n.Version+" (unresolved)")
	}
	return r.st.name.Render(n.Name) + r.st.version.Render("@"+n.Version)
}

// Lines is Render split into lines, without trailing blanks.
func Lines(root *deps.Node, opts Options) []string {
	return strings.Split(strings.TrimRight(Render(root, opts), "\n"), "\n")
}
