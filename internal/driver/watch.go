package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"cjslex/internal/source"
	"cjslex/internal/trace"
)

// DefaultDebounce groups bursts of file events into one rescan.
const DefaultDebounce = 200 * time.Millisecond

// WatchFunc receives the outcome of every scan started by Watch.
type WatchFunc func(fs *source.FileSet, results []FileResult, err error)

// Watch scans root once, then again whenever a file matching opts.Include
// (and not opts.Exclude) is created, written, removed or renamed. New
// directories are watched as they appear. Unchanged files are served from
// opts.Cache, so a rescan costs little more than discovery. Watch returns
// nil when ctx is cancelled.
func Watch(ctx context.Context, root string, opts Options, debounce time.Duration, onScan WatchFunc) error {
	// Каналы событий закрываются после каждого скана, для повторных сканов они не годятся.
	opts.Events = nil
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	if err := addWatchDirs(w, root, root, opts.Exclude); err != nil {
		return err
	}

	rescan := func(reason string) {
		trace.Point(ctx, trace.ScopePass, "watch-rescan", reason)
		fs, results, err := ScanDir(ctx, root, opts)
		if ctx.Err() != nil {
			return
		}
		onScan(fs, results, err)
	}
	rescan("initial")

	timer := time.NewTimer(debounce)
	timer.Stop()
	pending := ""

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(w, root, ev.Name, opts.Exclude); err != nil {
						trace.Point(ctx, trace.ScopeDetail, "watch-error", err.Error())
					}
					pending = ev.Name
					timer.Reset(debounce)
					continue
				}
			}
			if !watchRelevant(root, ev.Name, opts) {
				continue
			}
			pending = ev.Name
			timer.Reset(debounce)

		case <-timer.C:
			rescan(pending)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			trace.Point(ctx, trace.ScopeDetail, "watch-error", err.Error())
		}
	}
}

// addWatchDirs watches dir and every subdirectory below it that Discover
// would enter when walking root.
func addWatchDirs(w *fsnotify.Watcher, root, dir string, exclude []string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." {
			if strings.HasPrefix(d.Name(), ".") || matchAny(exclude, filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func watchRelevant(root, path string, opts Options) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	if matchAny(opts.Exclude, rel) {
		return false
	}
	return len(opts.Include) == 0 || matchAny(opts.Include, rel)
}
