package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/vctoggle/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// defaults are the flag defaults, overridable from the environment.
type defaults struct {
	LogLevel  string `env:"VCTOGGLE_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"VCTOGGLE_LOG_FORMAT" envDefault:"text"`
	Mode      string `env:"VCTOGGLE_MODE"`
	Output    string `env:"VCTOGGLE_OUTPUT" envDefault:"text"`
}

// pathList collects a repeatable path flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return parse(args, output, env.Options{})
}

func parse(args []string, output io.Writer, envOpts env.Options) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var def defaults
	if err := env.ParseWithOptions(&def, envOpts); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("parse env: %v", err)}
	}

	flagSet := flag.NewFlagSet("vctoggle", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
vctoggle - Plans how page builder settings reshape a host's registrations.

Usage:
  vctoggle [options] [SETTINGS_PATH...]

Arguments:
  SETTINGS_PATH
    Path to a .hcl/.yaml settings file or a directory of them. Later paths
    override keys from earlier ones.

Options:
`)
		flagSet.PrintDefaults()
	}

	var paths pathList
	flagSet.Var(&paths, "config", "Path to a settings file or directory. May be repeated.")
	flagSet.Var(&paths, "c", "Path to a settings file or directory (shorthand).")
	modeFlag := flagSet.String("mode", def.Mode, "Host mode the plan is computed for, e.g. 'page_editable'. (env VCTOGGLE_MODE)")
	outputFlag := flagSet.String("output", def.Output, "Plan output format. Options: 'text' or 'json'. (env VCTOGGLE_OUTPUT)")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'. (env VCTOGGLE_LOG_FORMAT)")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'. (env VCTOGGLE_LOG_LEVEL)")
	watchFlag := flagSet.Bool("watch", false, "Re-plan whenever a settings file changes.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths = append(paths, flagSet.Args()...)
	if len(paths) == 0 {
		slog.Debug("No settings path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SettingsPaths: paths,
		Mode:          *modeFlag,
		Output:        strings.ToLower(*outputFlag),
		Watch:         *watchFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
