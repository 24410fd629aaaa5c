package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/deptree/pkg/deps"
)

func tree() *deps.Node {
	util := &deps.Node{Name: "util", Version: "1.0.0", Dependencies: map[string]*deps.Node{}}
	return &deps.Node{Name: "app", Version: "1.0.0", Dependencies: map[string]*deps.Node{
		"lib": {Name: "lib", Version: "2.1.0", Dependencies: map[string]*deps.Node{"util": util}},
		"cli": {Name: "cli", Version: "0.3.0", Dependencies: map[string]*deps.Node{
			"util": util,
			"gone": {Name: "gone", Version: "^9.0.0", Dependencies: map[string]*deps.Node{}, Unresolved: true},
		}},
	}}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(tree(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT should start with digraph header:\n%s", dot)
	}
	for _, want := range []string{
		`"app@1.0.0" -> "lib@2.1.0";`,
		`"lib@2.1.0" -> "util@1.0.0";`,
		`"cli@0.3.0" -> "util@1.0.0";`,
		`"cli@0.3.0" -> "gone@^9.0.0";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing edge %s", want)
		}
	}
	if n := strings.Count(dot, `"util@1.0.0" [`); n != 1 {
		t.Errorf("shared node declared %d times, want 1", n)
	}
	if !strings.Contains(dot, "dashed") {
		t.Error("unresolved node should be dashed")
	}
	if !strings.Contains(dot, "penwidth=3") {
		t.Error("root should be highlighted")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(tree(), Options{Detailed: true})
	if !strings.Contains(dot, `deps: 2`) {
		t.Errorf("detailed labels should include dependency counts:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(tree(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
