package termtree

import (
	"strings"
	"testing"

	"github.com/matzehuels/deptree/pkg/deps"
)

func sample() *deps.Node {
	util := &deps.Node{Name: "util", Version: "1.0.0", Dependencies: map[string]*deps.Node{
		"tiny": {Name: "tiny", Version: "0.1.0", Dependencies: map[string]*deps.Node{}},
	}}
	return &deps.Node{Name: "app", Version: "1.0.0", Dependencies: map[string]*deps.Node{
		"lib": {Name: "lib", Version: "2.1.0", Dependencies: map[string]*deps.Node{"util": util}},
		"cli": {Name: "cli", Version: "0.3.0", Dependencies: map[string]*deps.Node{
			"util": util,
			"gone": {Name: "gone", Version: "^9.0.0", Dependencies: map[string]*deps.Node{}, Unresolved: true},
		}},
	}}
}

func TestRender(t *testing.T) {
	lines := Lines(sample(), Options{Plain: true})

	if lines[0] != "app@1.0.0" {
		t.Errorf("first line = %q, want root id", lines[0])
	}
	out := strings.Join(lines, "\n")
	for _, want := range []string{"cli@0.3.0", "lib@2.1.0", "gone@^9.0.0 (unresolved)", "tiny@0.1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "cli@") > strings.Index(out, "lib@") {
		t.Error("children should be printed in name order")
	}
}

func TestRenderDeduped(t *testing.T) {
	out := Render(sample(), Options{Plain: true})
	if n := strings.Count(out, "tiny@0.1.0"); n != 1 {
		t.Errorf("shared subtree expanded %d times, want 1:\n%s", n, out)
	}
	if !strings.Contains(out, "util@1.0.0 deduped") {
		t.Errorf("repeat should be marked deduped:\n%s", out)
	}

	full := Render(sample(), Options{Plain: true, Expand: true})
	if n := strings.Count(full, "tiny@0.1.0"); n != 2 {
		t.Errorf("Expand printed shared subtree %d times, want 2", n)
	}
}

func TestRenderMaxDepth(t *testing.T) {
	out := Render(sample(), Options{Plain: true, MaxDepth: 1})
	if strings.Contains(out, "util@") {
		t.Errorf("MaxDepth 1 should hide grandchildren:\n%s", out)
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated branches should be marked")
	}
}

func TestRenderLeaf(t *testing.T) {
	lines := Lines(&deps.Node{Name: "solo", Version: "1.0.0"}, Options{Plain: true})
	if len(lines) != 1 || lines[0] != "solo@1.0.0" {
		t.Errorf("Lines(leaf) = %q", lines)
	}
}
