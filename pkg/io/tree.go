package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/deptree/pkg/deps"
)

// WriteJSON encodes a tree as indented JSON. Shared subtrees are written
// out in full at every placement.
func WriteJSON(root *deps.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalJSON returns the compact JSON encoding of a tree.
func MarshalJSON(root *deps.Node) ([]byte, error) {
	data, err := json.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// ReadJSON decodes a tree. Missing dependency maps decode as empty maps.
func ReadJSON(r io.Reader) (*deps.Node, error) {
	var root deps.Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if root.Name == "" || root.Version == "" {
		return nil, errors.New("decode: tree root needs a name and a version")
	}
	fill(&root)
	return &root, nil
}

// UnmarshalJSON decodes a tree from bytes, as stored by a cache.
func UnmarshalJSON(data []byte) (*deps.Node, error) {
	var root deps.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	fill(&root)
	return &root, nil
}

func fill(n *deps.Node) {
	if n.Dependencies == nil {
		n.Dependencies = map[string]*deps.Node{}
	}
	for name, child := range n.Dependencies {
		if child.Name == "" {
			child.Name = name
		}
		fill(child)
	}
}

// ExportJSON writes a tree to a JSON file at path.
func ExportJSON(root *deps.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}

// ImportJSON reads a tree from a JSON file at path.
func ImportJSON(path string) (*deps.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
