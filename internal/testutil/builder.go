// Package testutil builds throwaway workspaces for command and app tests: a
// config file, a sqlite store location and source files, all under one temp
// directory.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Workspace is a built test directory.
type Workspace struct {
	Dir        string
	ConfigPath string
	StorePath  string
	sources    map[string]string
}

// Source returns the path of a source file added with WithSource, or where
// name would live in the workspace.
func (w *Workspace) Source(name string) string {
	if path, ok := w.sources[name]; ok {
		return path
	}
	return filepath.Join(w.Dir, name)
}

// Builder accumulates a config and source files and writes them on Build.
type Builder struct {
	t       *testing.T
	config  map[string]any
	sources map[string]string
	order   []string
}

// NewBuilder starts a workspace whose config keeps the store inside the
// workspace, disables line numbers and uses the notty markdown style so
// output is stable.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{
		t: t,
		config: map[string]any{
			"platform": "apple2",
			"viewer": map[string]any{
				"line_numbers":   false,
				"markdown_style": "notty",
			},
		},
		sources: make(map[string]string),
	}
}

// WithConfig applies config options.
func (b *Builder) WithConfig(opts ...ConfigOption) *Builder {
	for _, opt := range opts {
		opt(b.config)
	}
	return b
}

// WithSource adds a source file named name. name may contain directories.
func (b *Builder) WithSource(name, text string) *Builder {
	if _, ok := b.sources[name]; !ok {
		b.order = append(b.order, name)
	}
	b.sources[name] = text
	return b
}

// Build writes the workspace.
func (b *Builder) Build() *Workspace {
	b.t.Helper()
	dir := b.t.TempDir()

	w := &Workspace{
		Dir:        dir,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		StorePath:  filepath.Join(dir, "retrolex.db"),
		sources:    make(map[string]string, len(b.sources)),
	}

	store := section(b.config, "store")
	if _, ok := store["path"]; !ok {
		store["path"] = w.StorePath
	}

	data, err := yaml.Marshal(b.config)
	require.NoError(b.t, err)
	require.NoError(b.t, os.WriteFile(w.ConfigPath, data, 0o600))

	for _, name := range b.order {
		path := filepath.Join(dir, name)
		require.NoError(b.t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(b.t, os.WriteFile(path, []byte(b.sources[name]), 0o600))
		w.sources[name] = path
	}
	return w
}
