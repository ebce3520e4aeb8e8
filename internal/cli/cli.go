package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/bitconf/internal/app"
	"github.com/vk/bitconf/internal/flags"
	"github.com/vk/bitconf/internal/resource"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bitconf", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
bitconf - Load resource descriptors from configuration files and create them.

Usage:
  bitconf [options] CONFIG_PATH...

Arguments:
  CONFIG_PATH
    A .toml, .yaml, .yml, .json, .jsonc or .hcl file, or a directory
    containing such files. Several paths are merged, later ones winning.

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	outputFlag := flagSet.String("output", "text", "Descriptor output format. Options: 'text' or 'json'.")
	maxInvalidFlag := flagSet.Int("max-invalid", flags.MaxNames, "Number of unknown flag names reported per domain.")
	watchFlag := flagSet.Bool("watch", false, "Run again whenever a config file changes, until interrupted.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	listFlagsFlag := flagSet.Bool("list-flags", false, "Print the known flag names of every domain and exit.")
	systemFlag := flagSet.String("system", app.DefaultSections.System, "Path of the system settings table.")
	windowFlag := flagSet.String("window", app.DefaultSections.Window, "Path of the window settings table.")
	rendererFlag := flagSet.String("renderer", app.DefaultSections.Renderer, "Path of the renderer settings table.")
	drawColorFlag := flagSet.String("draw-color", app.DefaultSections.DrawColor, "Path of the draw color array.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *listFlagsFlag {
		PrintFlagTables(output)
		return nil, true, nil
	}

	paths := flagSet.Args()
	slog.Debug("Config paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No config path provided, printing usage and exiting.")
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

	if *healthPortFlag != 0 && !*watchFlag {
		return nil, false, &ExitError{Code: 2, Message: "healthcheck-port requires -watch"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Paths:           paths,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Output:          strings.ToLower(*outputFlag),
		MaxInvalidNames: *maxInvalidFlag,
		Watch:           *watchFlag,
		HealthcheckPort: *healthPortFlag,
		Sections: app.Sections{
			System:    *systemFlag,
			Window:    *windowFlag,
			Renderer:  *rendererFlag,
			DrawColor: *drawColorFlag,
		},
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// PrintFlagTables writes the known names of every flag domain to w.
func PrintFlagTables(w io.Writer) {
	printTable(w, resource.SubsystemFlags)
	printTable(w, resource.WindowFlags)
	printTable(w, resource.RendererFlags)
}

func printTable[M flags.Mask](w io.Writer, t flags.Table[M]) {
	fmt.Fprintf(w, "%s:\n", t.Domain())
	for _, name := range t.Names() {
		bit, _ := t.Lookup(name)
		fmt.Fprintf(w, "  %-20s 0x%08x\n", name, uint64(bit))
	}
}
