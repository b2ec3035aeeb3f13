package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/dryrun"
	"github.com/specialistvlad/vctoggle/internal/settings"
	"github.com/specialistvlad/vctoggle/internal/toggle"
)

// Run computes the registration plan for the configured settings and writes
// it out. In watch mode it then keeps re-planning on every settings change
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting vctoggle.", "paths", a.config.SettingsPaths, "mode", a.config.Mode)

	steps, err := a.Plan(ctx)
	if err != nil {
		return err
	}
	if err := dryrun.Render(a.outW, steps, a.config.Output); err != nil {
		return fmt.Errorf("render plan: %w", err)
	}

	if !a.config.Watch {
		return nil
	}
	return a.watch(ctx)
}

// Plan loads and decodes the settings, applies the toggle engine to a
// recording host and returns what it registered.
func (a *App) Plan(ctx context.Context) ([]*dryrun.Step, error) {
	ctx = a.context(ctx)
	logger := ctxlog.FromContext(ctx)

	raw, err := settings.LoadFiles(ctx, a.loaders, a.config.SettingsPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	s, warnings := settings.Decode(raw)
	for _, w := range warnings {
		logger.Warn("Setting ignored.", "key", w.Key, "reason", w.Message)
	}

	catalog := s.Catalog
	if len(catalog) == 0 {
		catalog = DefaultCatalog
		logger.Debug("Using default module catalog.", "count", len(catalog))
	}

	host := dryrun.NewRecorder(dryrun.WithMode(a.config.Mode))
	toggle.New(host, catalog, s).Apply(ctx)
	host.Expand(ctx)

	return host.Steps(), nil
}
