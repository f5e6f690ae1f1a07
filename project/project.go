// Package project models the host's project tree.
//
// A Node is one project: a directory, an optional parent and a mutable
// property store. Settings is the workspace-level root location that is
// resolved before any project exists.
package project

import (
	"path/filepath"
	"sort"
	"sync"
)

// Properties is a mutable property store owned by the host.
type Properties interface {
	Lookup(key string) (string, bool)
	Set(key, value string)
}

// PropertyMap is the default Properties implementation.
type PropertyMap struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPropertyMap creates a store seeded with a copy of initial.
func NewPropertyMap(initial map[string]string) *PropertyMap {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &PropertyMap{values: values}
}

// Lookup implements Properties.
func (m *PropertyMap) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Properties.
func (m *PropertyMap) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Keys returns the stored keys in sorted order.
func (m *PropertyMap) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Node is a project in the host's tree.
type Node struct {
	Name   string
	Dir    string
	Parent *Node
	Props  Properties

	// Ext holds non-string extension values published on the project,
	// such as the filter token map.
	Ext map[string]any
}

// NewNode creates a node with an empty property store.
func NewNode(name, dir string, parent *Node) *Node {
	return &Node{
		Name:   name,
		Dir:    dir,
		Parent: parent,
		Props:  NewPropertyMap(nil),
		Ext:    map[string]any{},
	}
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Root returns the topmost ancestor of n (n itself for a root).
func (n *Node) Root() *Node {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

// Lineage returns the nodes from the root down to n.
func (n *Node) Lineage() []*Node {
	var chain []*Node
	for cur := n; cur != nil; cur = cur.Parent {
		chain = append([]*Node{cur}, chain...)
	}
	return chain
}

// Lookup returns the value of key on n, falling back to its ancestors the
// way host projects inherit properties.
func (n *Node) Lookup(key string) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Props == nil {
			continue
		}
		if v, ok := cur.Props.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Child creates a node for the subdirectory name of n.
func (n *Node) Child(name string) *Node {
	return NewNode(name, filepath.Join(n.Dir, name), n)
}

// Settings is the workspace-level root location.
type Settings struct {
	Dir   string
	Props Properties
	Ext   map[string]any
}

// NewSettings creates settings rooted at dir.
func NewSettings(dir string) *Settings {
	return &Settings{
		Dir:   dir,
		Props: NewPropertyMap(nil),
		Ext:   map[string]any{},
	}
}

// Lookup returns the value of key from the settings properties.
func (s *Settings) Lookup(key string) (string, bool) {
	if s.Props == nil {
		return "", false
	}
	return s.Props.Lookup(key)
}
