// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	watchCatalogV1 = "families:\n  - name: gpu\n    pattern: GPU_SXM_[1-8]\n"
	watchCatalogV2 = "families:\n  - name: gpu\n    pattern: GPU_SXM_[1-4]\n"
)

func TestWatcher_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(watchCatalogV1), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan *Catalog, 16)
	w := NewWatcher(path, func(c *Catalog) { updates <- c })

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	first := receiveCatalog(t, updates)
	members, err := first.Expand("gpu")
	require.NoError(t, err)
	assert.Len(t, members, 8)

	// a broken file keeps the last good catalog
	require.NoError(t, os.WriteFile(path, []byte("families: ["), 0644))
	// rewriting identical content publishes nothing
	require.NoError(t, os.WriteFile(path, []byte(watchCatalogV1), 0644))
	require.NoError(t, os.WriteFile(path, []byte(watchCatalogV2), 0644))

	second := receiveCatalog(t, updates)
	assert.NotEqual(t, first.Hash(), second.Hash())
	members, err = second.Expand("gpu")
	require.NoError(t, err)
	assert.Len(t, members, 4)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_RunGlob(t *testing.T) {
	tests := map[string]struct {
		glob    string
		addFile string
	}{
		"files in one directory": {
			glob:    "*.yaml",
			addFile: "psu.yaml",
		},
		"new subdirectory under '**'": {
			glob:    filepath.Join("**", "*.yaml"),
			addFile: filepath.Join("baseboard", "psu.yaml"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "gpu.yaml"), []byte(watchCatalogV1), 0644))

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			updates := make(chan *Catalog, 16)
			w := NewWatcher(filepath.Join(dir, test.glob), func(c *Catalog) { updates <- c })

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			first := receiveCatalog(t, updates)
			assert.Len(t, first.Families(), 1)

			path := filepath.Join(dir, test.addFile)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
			require.NoError(t, os.WriteFile(path, []byte("families:\n  - name: psu\n    pattern: PSU_[0-5]\n"), 0644))

			second := receiveCatalog(t, updates)
			_, ok := second.Family("psu")
			assert.True(t, ok)
			assert.Len(t, second.Families(), 2)

			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("watcher did not stop")
			}
		})
	}
}

func TestWatcher_RunMissingDir(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing", "catalog.yaml"), nil)
	assert.Error(t, w.Run(context.Background()))
}

// receiveCatalog skips catalogs equal to the previous one, which a partially
// written file followed by its complete version can produce.
func receiveCatalog(t *testing.T, updates <-chan *Catalog) *Catalog {
	t.Helper()
	timeout := time.After(5 * time.Second)
	var last *Catalog
	for {
		select {
		case c := <-updates:
			last = c
		case <-time.After(200 * time.Millisecond):
			if last != nil {
				return last
			}
		case <-timeout:
			t.Fatal("timed out waiting for catalog")
			return nil
		}
	}
}
