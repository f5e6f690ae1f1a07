// Package sysprop models process-wide system properties.
//
// Go processes have no JVM-style system properties, so the store is an
// explicit, injectable key-value map. Default is the process-wide instance;
// tests and embedded hosts pass their own Store.
package sysprop

import (
	"sort"
	"strings"
	"sync"
)

// Store is a readable and writable set of system properties.
type Store interface {
	Lookup(key string) (string, bool)
	Set(key, value string)
	All() map[string]string
}

// Default is the process-wide store. Values promoted into it by one
// resolution are visible to every later resolution in the same process.
var Default Store = NewMapStore(nil)

// MapStore is a Store backed by a map. It is safe for concurrent use.
type MapStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapStore creates a store seeded with a copy of initial.
func NewMapStore(initial map[string]string) *MapStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MapStore{values: values}
}

// Lookup returns the value for key and whether it is set.
func (s *MapStore) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *MapStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// All returns a copy of every property.
func (s *MapStore) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Entry is a property whose name had a prefix stripped.
type Entry struct {
	Name  string // name with the prefix removed
	Key   string // original name
	Value string
}

// WithPrefix returns the entries of values whose name starts with prefix and
// is longer than it, sorted by name so callers apply them deterministically.
func WithPrefix(values map[string]string, prefix string) []Entry {
	var entries []Entry
	for k, v := range values {
		if len(k) <= len(prefix) || !strings.HasPrefix(k, prefix) {
			continue
		}
		entries = append(entries, Entry{Name: k[len(prefix):], Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// ParseEnviron converts os.Environ-style "KEY=value" pairs into a map.
// Pairs without '=' are ignored.
func ParseEnviron(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
