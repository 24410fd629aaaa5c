package io

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/deptree/pkg/deps"
)

// WriteYAML encodes a tree as YAML. Dependencies are emitted in name order.
func WriteYAML(root *deps.Node, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

func toYAML(n *deps.Node) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
	}
	str := func(s string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	}

	add("name", str(n.Name))
	add("version", str(n.Version))
	if n.Unresolved {
		add("unresolved", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}

	children := &yaml.Node{Kind: yaml.MappingNode}
	if len(n.Dependencies) == 0 {
		children.Style = yaml.FlowStyle
	}
	for _, name := range deps.SortedNames(n.Dependencies) {
		children.Content = append(children.Content, str(name), toYAML(n.Dependencies[name]))
	}
	add("dependencies", children)
	return m
}
