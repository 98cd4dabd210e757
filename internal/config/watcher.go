// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config file when it changes on disk and delivers
// the result on Updates. Editors replace files by rename, so the parent
// directory is watched rather than the file itself, and events are
// debounced before reloading.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	updates  chan *Config
	debounce time.Duration

	mu      sync.Mutex
	pending bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:     path,
		watcher:  fsw,
		updates:  make(chan *Config, 1),
		debounce: 200 * time.Millisecond,
	}, nil
}

// Updates delivers each successfully reloaded configuration.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Watch processes events until ctx is cancelled. Invalid intermediate
// states (half-written files) log and are skipped; the last good config
// stays in effect.
func (w *Watcher) Watch(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.mu.Lock()
				w.pending = true
				w.mu.Unlock()
			}

		case <-ticker.C:
			w.mu.Lock()
			fire := w.pending
			w.pending = false
			w.mu.Unlock()
			if !fire {
				continue
			}
			cfg, err := LoadFromPath(w.path)
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			select {
			case w.updates <- cfg:
			default:
				// Drop if the consumer has not taken the previous one;
				// the next change will deliver a fresh config anyway.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("config watcher: %v", err)
		}
	}
}
