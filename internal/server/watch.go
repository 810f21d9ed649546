package server

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/logfields"
)

// rebuildDebounce coalesces editor save bursts into one rebuild.
const rebuildDebounce = 300 * time.Millisecond

// startWatcher watches the docs root recursively and triggers debounced
// rebuilds on changes. The returned func stops the watcher.
func (s *Server) startWatcher(ctx context.Context) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryServe, "failed to create file watcher")
	}

	// fsnotify does not recurse; register every directory under the root.
	if err := addRecursive(watcher, s.docsRoot); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go s.watchLoop(ctx, watcher)
	return func() { _ = watcher.Close() }, nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	trigger := make(chan struct{}, 1)

	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(rebuildDebounce, func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-trigger:
			slog.Info("Source change detected, rebuilding", logfields.Path(s.docsRoot))
			s.rebuild(ctx)
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			// Watch newly created directories too.
			if event.Op.Has(fsnotify.Create) {
				_ = addRecursive(watcher, event.Name)
			}
			schedule()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", logfields.Error(err))
		}
	}
}

// addRecursive registers path and every directory below it. Non-directories
// are ignored.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Race with deletions is fine during watch setup.
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			slog.Warn("Failed to watch directory", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// startSchedule starts the optional periodic full rebuild. The returned func
// shuts the scheduler down.
func (s *Server) startSchedule(ctx context.Context) (func(), error) {
	noop := func() {}
	if s.cfg.Serve.RebuildEvery == "" {
		return noop, nil
	}

	every, err := time.ParseDuration(s.cfg.Serve.RebuildEvery)
	if err != nil {
		return noop, derrors.WrapError(err, derrors.CategoryConfig, "invalid serve.rebuild_every")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return noop, derrors.WrapError(err, derrors.CategoryServe, "failed to create scheduler")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() { s.rebuild(ctx) }),
		gocron.WithName("periodic-rebuild"),
	)
	if err != nil {
		return noop, derrors.WrapError(err, derrors.CategoryServe, "failed to schedule rebuild job")
	}

	scheduler.Start()
	slog.Info("Periodic rebuild scheduled", slog.Duration("every", every))
	return func() { _ = scheduler.Shutdown() }, nil
}
