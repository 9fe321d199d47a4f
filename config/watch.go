package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a tunables file whenever it changes on disk.
type Watcher struct {
	path    string
	base    Tunables
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching the directory holding path. Editors often
// replace files instead of writing them in place, so the directory is
// watched rather than the file itself.
func NewWatcher(path string, base Tunables) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Watcher{path: path, base: base, watcher: w}, nil
}

// Run calls fn with the reloaded tunables after every change of the file
// until ctx is done. Files that fail to load are logged and skipped.
func (w *Watcher) Run(ctx context.Context, fn func(Tunables)) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			t, err := Load(w.path, w.base)
			if err != nil {
				log.Printf("reload tunables: %v", err)
				continue
			}
			fn(t)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch tunables: %v", err)
		}
	}
}
