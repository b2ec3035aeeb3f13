package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/dryrun"
	"github.com/specialistvlad/vctoggle/internal/fsutil"
)

// watchSet tells which filesystem events concern the settings.
type watchSet struct {
	files map[string]struct{} // explicitly named settings files
	roots map[string]struct{} // settings directories, walked recursively
	exts  map[string]struct{}
}

// matches reports whether name is a settings file: either named explicitly or
// carrying a loader extension somewhere below a settings directory.
func (w watchSet) matches(name string) bool {
	name = filepath.Clean(name)
	if _, ok := w.files[name]; ok {
		return true
	}
	if !w.underRoot(name) {
		return false
	}
	_, ok := w.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

func (w watchSet) underRoot(name string) bool {
	for dir := filepath.Dir(filepath.Clean(name)); ; {
		if _, ok := w.roots[dir]; ok {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// watch re-plans after settings files change. A failed reload keeps the last
// good plan and only logs the error.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{})
	set, err := a.addWatches(watcher, watched)
	if err != nil {
		return err
	}
	logger.Info("Watching settings for changes.", "paths", a.config.SettingsPaths, "dirs", len(watched))

	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Settings watcher stopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&watchedOps == 0 {
				continue
			}
			if !set.matches(event.Name) && !trackDir(ctx, watcher, watched, set, event) {
				continue
			}
			logger.Debug("Settings change detected.", "file", event.Name, "op", event.Op.String())
			if debounce == nil {
				debounce = time.NewTimer(a.debounce)
			} else {
				debounce.Reset(a.debounce)
			}
			debounceC = debounce.C
		case <-debounceC:
			debounceC = nil
			a.reload(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Settings watcher error.", "error", err)
		}
	}
}

// trackDir keeps the watch list in step with directories appearing or
// disappearing below a settings directory. It reports whether the event
// changed the set of loadable files.
func trackDir(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]struct{}, set watchSet, event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if !set.underRoot(name) {
		return false
	}

	if event.Op.Has(fsnotify.Create) {
		info, err := os.Stat(name)
		if err != nil || !info.IsDir() {
			return false
		}
		if err := watchTree(watcher, watched, name); err != nil {
			ctxlog.FromContext(ctx).Warn("Failed to watch new settings directory.", "dir", name, "error", err)
		}
		return true
	}

	if !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	if _, ok := watched[name]; !ok {
		return false
	}
	prefix := name + string(filepath.Separator)
	for dir := range watched {
		if dir == name || strings.HasPrefix(dir, prefix) {
			_ = watcher.Remove(dir)
			delete(watched, dir)
		}
	}
	return true
}

// watchTree watches root and every directory below it.
func watchTree(watcher *fsnotify.Watcher, watched map[string]struct{}, root string) error {
	dirs, err := fsutil.FindDirs(root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watchDir(watcher, watched, dir); err != nil {
			return err
		}
	}
	return nil
}

func watchDir(watcher *fsnotify.Watcher, watched map[string]struct{}, dir string) error {
	if _, ok := watched[dir]; ok {
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	watched[dir] = struct{}{}
	return nil
}

func (a *App) reload(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	steps, err := a.Plan(ctx)
	if err != nil {
		logger.Warn("Settings reload failed, keeping last plan.", "error", err)
		return
	}
	if err := dryrun.Render(a.outW, steps, a.config.Output); err != nil {
		logger.Warn("Failed to render reloaded plan.", "error", err)
		return
	}
	logger.Info("Settings reloaded.", "steps", len(steps))
}

// addWatches watches every settings directory recursively and the parent
// directory of every settings file, so editors that replace files by rename
// are still seen.
func (a *App) addWatches(watcher *fsnotify.Watcher, watched map[string]struct{}) (watchSet, error) {
	set := watchSet{
		files: make(map[string]struct{}),
		roots: make(map[string]struct{}),
		exts:  make(map[string]struct{}),
	}
	for _, l := range a.loaders {
		for _, ext := range l.Extensions() {
			set.exts[strings.ToLower(ext)] = struct{}{}
		}
	}

	for _, path := range a.config.SettingsPaths {
		path = filepath.Clean(path)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			set.roots[path] = struct{}{}
			if err := watchTree(watcher, watched, path); err != nil {
				return set, err
			}
			continue
		}
		set.files[path] = struct{}{}
		if err := watchDir(watcher, watched, filepath.Dir(path)); err != nil {
			return set, err
		}
	}
	return set, nil
}
