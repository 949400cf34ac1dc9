// Package config loads xcrt.toml, the per-project settings file for running
// and self-testing generated programs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up from the working directory upward.
const FileName = "xcrt.toml"

// Config is the decoded xcrt.toml.
type Config struct {
	Project  ProjectConfig  `toml:"project"`
	Run      RunConfig      `toml:"run"`
	Trace    TraceConfig    `toml:"trace"`
	Selftest SelftestConfig `toml:"selftest"`
}

// ProjectConfig names the project.
type ProjectConfig struct {
	Name string `toml:"name"`
}

// RunConfig controls single program runs.
type RunConfig struct {
	CheckLeaks bool   `toml:"check_leaks"`
	CrashDir   string `toml:"crash_dir"`
	Color      string `toml:"color"`
}

// TraceConfig mirrors the --trace* flags.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

// SelftestConfig controls `xcrt selftest`.
type SelftestConfig struct {
	Jobs    int      `toml:"jobs"`
	Timeout Duration `toml:"timeout"`
}

// Duration decodes TOML strings like "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the settings used when no xcrt.toml exists.
func Default() Config {
	return Config{
		Run: RunConfig{
			CheckLeaks: true,
			Color:      "auto",
		},
		Trace: TraceConfig{
			Level: "off",
			Mode:  "stream",
		},
		Selftest: SelftestConfig{
			Timeout: Duration{10 * time.Second},
		},
	}
}

// File is a loaded settings file with its location.
type File struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir looking for xcrt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads xcrt.toml starting at startDir. ok is false when
// no file exists; the returned File then carries Default().
func Discover(startDir string) (file *File, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &File{Config: Default()}, false, nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &File{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// Load decodes path over Default() and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("project") {
		return Config{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if meta.IsDefined("run", "color") {
		switch cfg.Run.Color {
		case "auto", "on", "off":
		default:
			return Config{}, fmt.Errorf("%s: [run].color must be auto, on or off, got %q", path, cfg.Run.Color)
		}
	}
	if meta.IsDefined("selftest", "jobs") && cfg.Selftest.Jobs <= 0 {
		return Config{}, fmt.Errorf("%s: [selftest].jobs must be positive", path)
	}
	if meta.IsDefined("selftest", "timeout") && cfg.Selftest.Timeout.Duration <= 0 {
		return Config{}, fmt.Errorf("%s: [selftest].timeout must be positive", path)
	}
	if cfg.Run.CrashDir != "" && !filepath.IsAbs(cfg.Run.CrashDir) {
		cfg.Run.CrashDir = filepath.Join(filepath.Dir(path), filepath.FromSlash(cfg.Run.CrashDir))
	}
	return cfg, nil
}
