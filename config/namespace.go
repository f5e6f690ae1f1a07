package config

import (
	"sort"

	"github.com/randalmurphal/propflow/token"
)

// Origin records where a value was written from.
type Origin struct {
	Source Source `json:"source" yaml:"source"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Value is a resolved property with its provenance.
type Value struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Origin `yaml:",inline"`
}

// TokenMap maps filter token names to values.
type TokenMap map[string]string

// Namespace is the flattened property set of one resolution run. Every
// write also updates the filter token map, so the two always agree.
type Namespace struct {
	values  map[string]Value
	history map[string][]Value
	tokens  TokenMap
}

// NewNamespace creates an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{
		values:  make(map[string]Value),
		history: make(map[string][]Value),
		tokens:  make(TokenMap),
	}
}

// Set writes key, replacing any earlier value, and projects it into the
// filter token map.
func (n *Namespace) Set(key, value string, from Origin) {
	v := Value{Key: key, Value: value, Origin: from}
	n.values[key] = v
	n.history[key] = append(n.history[key], v)
	for _, tok := range token.Project(key) {
		n.tokens[tok.Name] = value
	}
}

// Get returns the value for key, or empty string if not set.
func (n *Namespace) Get(key string) string {
	return n.values[key].Value
}

// Lookup returns the value for key and whether it is set.
func (n *Namespace) Lookup(key string) (string, bool) {
	v, ok := n.values[key]
	return v.Value, ok
}

// Has reports whether key is set.
func (n *Namespace) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

// Source returns the layer that produced the current value of key.
func (n *Namespace) Source(key string) Source {
	return n.values[key].Source
}

// Value returns the current value of key with its provenance.
func (n *Namespace) Value(key string) (Value, bool) {
	v, ok := n.values[key]
	return v, ok
}

// Trace returns every write of key in order, the last being the current value.
func (n *Namespace) Trace(key string) []Value {
	return append([]Value(nil), n.history[key]...)
}

// Keys returns all keys in sorted order.
func (n *Namespace) Keys() []string {
	keys := make([]string, 0, len(n.values))
	for k := range n.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (n *Namespace) Len() int {
	return len(n.values)
}

// All returns a copy of all key-value pairs.
func (n *Namespace) All() map[string]string {
	out := make(map[string]string, len(n.values))
	for k, v := range n.values {
		out[k] = v.Value
	}
	return out
}

// Values returns every current value with provenance, sorted by key.
func (n *Namespace) Values() []Value {
	out := make([]Value, 0, len(n.values))
	for _, k := range n.Keys() {
		out = append(out, n.values[k])
	}
	return out
}

// Tokens returns a copy of the filter token map.
func (n *Namespace) Tokens() TokenMap {
	out := make(TokenMap, len(n.tokens))
	for k, v := range n.tokens {
		out[k] = v
	}
	return out
}
