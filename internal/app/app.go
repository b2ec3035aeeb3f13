package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/specialistvlad/vctoggle/internal/ctxlog"
	"github.com/specialistvlad/vctoggle/internal/hcl_adapter"
	"github.com/specialistvlad/vctoggle/internal/settings"
	"github.com/specialistvlad/vctoggle/internal/yaml_adapter"
)

const defaultDebounce = 250 * time.Millisecond

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loaders  []settings.Loader
	debounce time.Duration
}

// NewApp is the constructor for the main application. Plans are written to
// outW and logs to logW. Without explicit loaders, both the HCL and YAML
// settings formats are accepted.
func NewApp(outW, logW io.Writer, cfg *Config, loaders ...settings.Loader) *App {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []settings.Loader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loaders:  loaders,
		debounce: defaultDebounce,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
