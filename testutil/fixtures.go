// Package testutil provides utilities for testing.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/randalmurphal/propflow/project"
)

// LoadFixture loads a fixture file from the testdata directory.
// The path is relative to the testdata directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	fullPath := filepath.Join("testdata", path)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", path, err)
	}

	return data
}

// NewFs returns an empty in-memory filesystem.
func NewFs() afero.Fs {
	return afero.NewMemMapFs()
}

// WriteFile writes content to path on fsys, creating parent directories.
func WriteFile(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteProperties writes props as a property file at path, one key=value
// line per entry in sorted key order.
func WriteProperties(t *testing.T, fsys afero.Fs, path string, props map[string]string) {
	t.Helper()

	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(props[k])
		sb.WriteString("\n")
	}
	WriteFile(t, fsys, path, sb.String())
}

// Mkdir creates dir and its parents on fsys.
func Mkdir(t *testing.T, fsys afero.Fs, dir string) {
	t.Helper()

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
}

// Hierarchy builds a chain of projects rooted at rootDir. The root is named
// "root" and each name adds a child of the previous node in a subdirectory
// of the same name. It returns the nodes from root to leaf.
func Hierarchy(rootDir string, names ...string) []*project.Node {
	nodes := []*project.Node{project.NewNode("root", rootDir, nil)}
	for _, name := range names {
		nodes = append(nodes, nodes[len(nodes)-1].Child(name))
	}
	return nodes
}
