package dev

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ChangeType classifies a detected file change by what must happen in
// response: route changes need a server restart, CSS can hot-swap, and
// other assets trigger a full browser reload.
type ChangeType int

const (
	ChangeRoute ChangeType = iota
	ChangeCSS
	ChangeAsset
)

// Change is one detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Paths are the directories to watch.
	Paths []string

	// Ignore patterns to skip. Bare names match any path segment;
	// patterns with glob characters match the base name.
	Ignore []string

	// Interval is the polling interval, which also acts as the
	// debounce window.
	Interval time.Duration
}

// DefaultIgnore contains patterns every project wants skipped.
var DefaultIgnore = []string{
	"*_test.go",
	".git",
	"node_modules",
	"dist",
	".strata",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher polls the configured paths for modified, added, and removed
// files. Polling keeps the watcher dependency-free and portable; the
// interval bounds notification latency.
type Watcher struct {
	config   WatcherConfig
	onChange func(Change)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	modTime map[string]time.Time
	scanned bool
}

// NewWatcher creates a watcher for the given configuration.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval == 0 {
		config.Interval = 200 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	return &Watcher{
		config:  config,
		modTime: make(map[string]time.Time),
	}
}

// OnChange sets the callback invoked for each change batch. Must be set
// before Start.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start runs the polling loop until the context is cancelled or Stop is
// called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	w.scan(nil)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case <-ticker.C:
			w.poll()
		}
	}
}

// Stop terminates the polling loop.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning reports whether the watcher loop is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// poll scans once and reports changes, collapsing each change type to a
// single notification per poll.
func (w *Watcher) poll() {
	w.mu.Lock()
	callback := w.onChange
	w.mu.Unlock()
	if callback == nil {
		return
	}

	var changes []Change
	w.scan(&changes)

	reported := make(map[ChangeType]bool)
	for _, change := range changes {
		if reported[change.Type] {
			continue
		}
		reported[change.Type] = true
		callback(change)
	}
}

// scan walks the watched paths, updating the modification-time map. When
// changes is non-nil, added and modified files are appended to it, and
// deleted files are detected by comparing against the previous map.
func (w *Watcher) scan(changes *[]Change) {
	seen := make(map[string]bool)

	for _, root := range w.config.Paths {
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if w.ignored(p) {
					return filepath.SkipDir
				}
				return nil
			}
			if w.ignored(p) {
				return nil
			}

			seen[p] = true
			w.mu.Lock()
			previous, known := w.modTime[p]
			w.modTime[p] = info.ModTime()
			scanned := w.scanned
			w.mu.Unlock()

			if changes != nil && scanned && (!known || info.ModTime().After(previous)) {
				*changes = append(*changes, Change{Path: p, Type: classify(p)})
			}
			return nil
		})
	}

	w.mu.Lock()
	for p := range w.modTime {
		if !seen[p] {
			delete(w.modTime, p)
			if changes != nil && w.scanned {
				*changes = append(*changes, Change{Path: p, Type: classify(p)})
			}
		}
	}
	w.scanned = true
	w.mu.Unlock()
}

// ignored reports whether a path matches any ignore pattern.
func (w *Watcher) ignored(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if strings.ContainsAny(pattern, "*?[") {
			if matched, _ := filepath.Match(pattern, name); matched {
				return true
			}
			continue
		}
		for _, segment := range strings.Split(normalized, "/") {
			if segment == pattern {
				return true
			}
		}
	}
	return false
}

// classify maps a file extension to its change type.
func classify(path string) ChangeType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return ChangeRoute
	case ".css", ".scss", ".sass", ".less":
		return ChangeCSS
	default:
		return ChangeAsset
	}
}
