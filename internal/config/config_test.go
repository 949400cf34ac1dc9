package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, `
[project]
name = "demo"

[run]
check_leaks = false
crash_dir = "crashes"
color = "off"

[trace]
level = "call"

[selftest]
jobs = 3
timeout = "2s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project.Name != "demo" {
		t.Errorf("name = %q", cfg.Project.Name)
	}
	if cfg.Run.CheckLeaks {
		t.Error("check_leaks should be false")
	}
	if want := filepath.Join(dir, "crashes"); cfg.Run.CrashDir != want {
		t.Errorf("crash_dir = %q, want %q", cfg.Run.CrashDir, want)
	}
	if cfg.Trace.Level != "call" || cfg.Trace.Mode != "stream" {
		t.Errorf("trace = %+v", cfg.Trace)
	}
	if cfg.Selftest.Jobs != 3 || cfg.Selftest.Timeout.Duration != 2*time.Second {
		t.Errorf("selftest = %+v", cfg.Selftest)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no project", "[run]\ncheck_leaks = true\n", "missing [project]"},
		{"empty name", "[project]\nname = \" \"\n", "missing [project].name"},
		{"bad color", "[project]\nname = \"x\"\n[run]\ncolor = \"purple\"\n", "[run].color"},
		{"bad jobs", "[project]\nname = \"x\"\n[selftest]\njobs = 0\n", "[selftest].jobs"},
		{"bad timeout", "[project]\nname = \"x\"\n[selftest]\ntimeout = \"soon\"\n", "failed to parse TOML"},
		{"unknown key", "[project]\nname = \"x\"\nflavour = 1\n", "unknown keys: project.flavour"},
		{"syntax", "[project\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "[project]\nname = \"up\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	file, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover = %v, %v", ok, err)
	}
	if file.Root != root || file.Config.Project.Name != "up" {
		t.Errorf("file = %+v", file)
	}
	if !file.Config.Run.CheckLeaks {
		t.Error("defaults should survive a partial file")
	}
}

func TestDiscoverDefaults(t *testing.T) {
	// Nothing above a fresh temp dir is expected to carry xcrt.toml.
	file, ok, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Skipf("found %s above the temp dir", file.Path)
	}
	if file.Config.Selftest.Timeout.Duration != 10*time.Second {
		t.Errorf("default timeout = %v", file.Config.Selftest.Timeout)
	}
}
