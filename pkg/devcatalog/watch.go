// SPDX-License-Identifier: GPL-3.0-or-later

package devcatalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/NVIDIA/nvidia-gpio-status-handler-sub000/logger"
)

// Watcher recompiles a catalog whenever one of its files changes on disk and
// hands every catalog with a new fingerprint to OnChange.
// Path is a file or a LoadGlob pattern.
type Watcher struct {
	*logger.Logger

	Path     string
	OnChange func(*Catalog)

	watched map[string]bool
	loaded  bool
	hash    uint64
}

func NewWatcher(path string, onChange func(*Catalog)) *Watcher {
	return &Watcher{
		Logger:   logger.With("component", "devcatalog watcher", "path", path),
		Path:     path,
		OnChange: onChange,
	}
}

// Run loads the catalog once and then watches it until ctx is done.
// Directories are watched rather than files, so that files replaced by rename
// or added to a glob are noticed.
func (w *Watcher) Run(ctx context.Context) error {
	pattern, err := expandPattern(w.Path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsw.Close() }()

	w.watched = make(map[string]bool)
	base := globBase(pattern)
	if err := w.watchDir(fsw, base); err != nil {
		return err
	}
	if strings.Contains(pattern, "**") {
		w.watchTree(fsw, base)
	}

	w.reload(ctx, fsw, pattern)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				w.watchTree(fsw, event.Name)
				w.reload(ctx, fsw, pattern)
				continue
			}
			if match, _ := doublestar.PathMatch(pattern, filepath.Clean(event.Name)); !match {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.Debugf("event: %s", event)
			w.reload(ctx, fsw, pattern)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.Warningf("watch error: %v", err)
		}
	}
}

func (w *Watcher) watchDir(fsw *fsnotify.Watcher, dir string) error {
	if w.watched[dir] {
		return nil
	}
	if err := fsw.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = true
	return nil
}

// watchTree watches dir and every directory below it.
func (w *Watcher) watchTree(fsw *fsnotify.Watcher, dir string) {
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.watchDir(fsw, path); err != nil {
			w.Warningf("watching '%s': %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) reload(ctx context.Context, fsw *fsnotify.Watcher, pattern string) {
	cfg, files, err := loadGlob(pattern)
	if err != nil {
		w.Errorf("loading catalog: %v", err)
		return
	}
	for _, file := range files {
		if err := w.watchDir(fsw, filepath.Dir(file)); err != nil {
			w.Warningf("watching '%s': %v", filepath.Dir(file), err)
		}
	}

	cat, err := Compile(ctx, cfg)
	if err != nil {
		w.Errorf("compiling catalog: %v", err)
		return
	}

	if w.loaded && cat.Hash() == w.hash {
		w.Debugf("catalog unchanged (hash %d)", w.hash)
		return
	}

	w.loaded, w.hash = true, cat.Hash()
	w.Infof("catalog loaded: %d families from %d files (hash %d)", len(cat.families), len(files), w.hash)

	if w.OnChange != nil {
		w.OnChange(cat)
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
