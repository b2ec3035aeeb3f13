package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/vctoggle/internal/dryrun"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SettingsPaths []string // files or directories of .hcl/.yaml settings
	Mode          string   // host mode reported to mode-aware features
	Output        string   // plan format: text or json
	Watch         bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SettingsPaths) == 0 {
		return nil, errors.New("at least one settings path is required")
	}
	switch cfg.Output {
	case "":
		cfg.Output = dryrun.FormatText
	case dryrun.FormatText, dryrun.FormatJSON:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.Output)
	}
	cfg.SettingsPaths = append([]string(nil), cfg.SettingsPaths...)
	return &cfg, nil
}
