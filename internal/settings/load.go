package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/fsutil"
)

// Loader is the interface for a format-specific settings parser.
type Loader interface {
	// Extensions lists the file extensions (with the leading dot) the loader
	// understands.
	Extensions() []string

	// Load parses a single file into the format-agnostic Raw map.
	Load(ctx context.Context, path string) (Raw, error)
}

// LoadFiles parses every settings file found under paths and merges them in
// order; a key set by a later file replaces the earlier value. Directories are
// walked recursively and files are picked by extension. A path that does not
// exist is skipped.
func LoadFiles(ctx context.Context, loaders []Loader, paths ...string) (Raw, error) {
	logger := ctxlog.FromContext(ctx)

	byExt := indexLoaders(loaders)
	files, err := findFiles(paths, byExt)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered settings files.", "count", len(files))

	merged := make(Raw)
	for _, file := range files {
		loader := byExt[strings.ToLower(filepath.Ext(file))]
		raw, err := loader.Load(ctx, file)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", file, err)
		}
		for key, val := range raw {
			if _, exists := merged[key]; exists {
				logger.Debug("Settings key overridden.", "key", key, "file", file)
			}
			merged[key] = val
		}
	}

	return merged, nil
}

// Files returns the settings files LoadFiles would read, in merge order.
func Files(loaders []Loader, paths ...string) ([]string, error) {
	return findFiles(paths, indexLoaders(loaders))
}

func indexLoaders(loaders []Loader) map[string]Loader {
	byExt := make(map[string]Loader)
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[strings.ToLower(ext)] = l
		}
	}
	return byExt
}

func findFiles(paths []string, byExt map[string]Loader) ([]string, error) {
	if len(byExt) == 0 {
		return nil, errors.New("no settings loaders configured")
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := byExt[strings.ToLower(filepath.Ext(p))]; !ok {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		exts := make([]string, 0, len(byExt))
		for ext := range byExt {
			exts = append(exts, ext)
		}
		found, err := fsutil.FindFilesByExtension(path, exts...)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return files, nil
}
