package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"mktools/cmd/mk/mkfile"
	"mktools/pkg/graph"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses bursts of events (editors often write a file in
// several steps) into one rebuild.
const watchDebounce = 200 * time.Millisecond

var errWatcherClosed = errors.New("file watcher closed")

// watch builds targets, then rebuilds every time the makefiles or a source
// prerequisite change, until ctx is cancelled. The makefile is re-read on
// every round so edits to it take effect.
func watch(ctx context.Context, logger *slog.Logger, targets []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	for {
		files := graph.NewSet()

		s, err := loadSession(logger)
		if err != nil {
			logger.Error("cannot load makefile", "error", err)
			if path := resolveMakefile(flagFile, fileExists); path != "" {
				files.Add(filepath.Clean(path))
			}
		} else {
			files = watchPaths(s, fileExists)
			if err := run(ctx, s, os.Stdout, logger, targets); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("build failed", "error", err)
			}
		}

		if err := rewatch(w, files); err != nil {
			return err
		}
		logger.Info("watching for changes", "files", files.Len())

		if err := waitForChange(ctx, w, files, logger); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// watchPaths returns the files whose change should trigger a rebuild: the
// makefiles that were read and every existing prerequisite that is not
// itself a target. Targets are left out so a build does not retrigger itself.
func watchPaths(s *mkfile.Session, exists func(string) bool) graph.Set {
	files := graph.NewSet()
	for _, f := range s.Files() {
		files.Add(filepath.Clean(f))
	}
	g := s.Rules()
	for _, name := range g.Names() {
		for _, p := range g.Get(name).Prereqs {
			if g.Get(p) == nil && exists(p) {
				files.Add(filepath.Clean(p))
			}
		}
	}
	return files
}

// rewatch replaces the watch list with the directories holding files.
// Directories are watched rather than files so that editors which replace a
// file by renaming still produce events.
func rewatch(w *fsnotify.Watcher, files graph.Set) error {
	for _, dir := range w.WatchList() {
		_ = w.Remove(dir)
	}
	dirs := graph.NewSet()
	for _, f := range files.Sorted() {
		dirs.Add(filepath.Dir(f))
	}
	for _, dir := range dirs.Sorted() {
		if err := w.Add(dir); err != nil {
			return err
		}
	}
	return nil
}

// waitForChange blocks until a file in files changes and no further change
// arrives within watchDebounce.
func waitForChange(ctx context.Context, w *fsnotify.Watcher, files graph.Set, logger *slog.Logger) error {
	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return errWatcherClosed
			}
			if ev.Op == fsnotify.Chmod || !files.Has(filepath.Clean(ev.Name)) {
				continue
			}
			logger.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			settle = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return errWatcherClosed
			}
			logger.Warn("watch error", "error", err)
		case <-settle:
			return nil
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
