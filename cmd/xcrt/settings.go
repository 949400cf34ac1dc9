package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xcrt/internal/config"
)

// settings is the configuration in effect for the running command: xcrt.toml
// (or the defaults) with explicitly set flags applied on top.
var settings = config.Default()

// settingsPath is the file settings came from, empty for defaults.
var settingsPath string

// cleanups stop the tracer and profilers started by prepare, most recent
// first. runCleanups is called after any command, failed ones included.
var cleanups []func()

func runCleanups() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
}

func prepare(cmd *cobra.Command, _ []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	mode, err := readSwitch("color", settings.Run.Color)
	if err != nil {
		return err
	}
	color.NoColor = !switchEnabled(mode, os.Stdout)

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopProfiling)

	stopTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, stopTracing)
	return nil
}

func finish(*cobra.Command, []string) error {
	runCleanups()
	return nil
}

func loadSettings(cmd *cobra.Command) error {
	root := cmd.Root()
	path, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		settings, settingsPath = cfg, path
	} else {
		file, ok, err := config.Discover(".")
		if err != nil {
			return err
		}
		settings = file.Config
		if ok {
			settingsPath = file.Path
		}
	}

	flags := root.PersistentFlags()
	overrideString(flags.Changed("color"), &settings.Run.Color, func() (string, error) { return flags.GetString("color") })
	overrideString(flags.Changed("trace"), &settings.Trace.Output, func() (string, error) { return flags.GetString("trace") })
	overrideString(flags.Changed("trace-level"), &settings.Trace.Level, func() (string, error) { return flags.GetString("trace-level") })
	overrideString(flags.Changed("trace-mode"), &settings.Trace.Mode, func() (string, error) { return flags.GetString("trace-mode") })
	return nil
}

func overrideString(changed bool, dst *string, get func() (string, error)) {
	if !changed {
		return
	}
	if v, err := get(); err == nil {
		*dst = v
	}
}

// colorFor reports whether output written to f should be coloured.
func colorFor(f *os.File) bool {
	mode, err := readSwitch("color", settings.Run.Color)
	if err != nil {
		return false
	}
	return switchEnabled(mode, f)
}
