package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/bitconf/internal/ctxlog"
)

// reloadDelay coalesces the burst of events a single save produces.
const reloadDelay = 100 * time.Millisecond

// watch runs a pass now and another after every relevant file change.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(a.config.Paths)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	logger.Info("Watching for configuration changes.", "dirs", len(dirs))

	if a.config.HealthcheckPort > 0 {
		stop := a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer stop()
	}

	pass := 0
	reload := func(ctx context.Context) {
		pass++
		a.reload(ctxlog.With(ctx, "pass", pass))
	}
	reload(ctx)
	return watchLoop(ctx, watcher.Events, watcher.Errors, a.relevant, reload, reloadDelay)
}

func (a *App) reload(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	if _, err := a.RunOnce(ctx); err != nil {
		logger.Error("Configuration pass failed.", "error", err)
	}
}

// relevant reports whether a change to name can affect the loaded tree.
func (a *App) relevant(name string) bool {
	name = filepath.Clean(name)
	for _, p := range a.config.Paths {
		p = filepath.Clean(p)
		if name == p {
			return true
		}
		if strings.HasPrefix(name, p+string(filepath.Separator)) && a.knownExtension(name) {
			return true
		}
	}
	return false
}

func (a *App) knownExtension(name string) bool {
	lister, ok := a.loader.(interface{ Extensions() []string })
	if !ok {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range lister.Extensions() {
		if ext == known {
			return true
		}
	}
	return false
}

// watchDirs lists the directories to watch: the parent of every file, so
// that editors replacing the file are noticed, and every directory below a
// directory path.
func watchDirs(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(filepath.Clean(p)))
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				add(filepath.Clean(path))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}
	return dirs, nil
}

// watchLoop calls reload once per burst of relevant events, delay after the
// last one. Reloads never overlap. It returns when ctx is done or either
// channel is closed.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	relevant func(string) bool,
	reload func(context.Context),
	delay time.Duration,
) error {
	logger := ctxlog.FromContext(ctx)

	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch loop stopped.")
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !relevant(ev.Name) {
				continue
			}
			logger.Debug("Configuration change detected.", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(delay)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		case <-timer.C:
			reload(ctx)
		}
	}
}
