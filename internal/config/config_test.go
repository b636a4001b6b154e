package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.CinemaName() != "GIC Cinemas" {
		t.Fatalf("cinema name = %q", c.CinemaName())
	}
	if c.Project.Booking.Prefix != "GIC" || c.Project.Booking.Digits != 4 {
		t.Fatalf("booking defaults = %+v", c.Project.Booking)
	}
	if c.UIMode() != UIModeConsole {
		t.Fatalf("ui mode = %q", c.UIMode())
	}
	want := filepath.Join(projectDir, ".gic", "logs", "journey.log")
	if c.LogPath() != want {
		t.Fatalf("log path = %s, want %s", c.LogPath(), want)
	}
}

func TestInitDirWritesParsableDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("init dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, ".gic", "logs")); err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("load generated config: %v", err)
	}
	if c.Project.Display.Taken != "#" || c.Project.Display.Highlight != "o" || c.Project.Display.Empty != "." {
		t.Fatalf("display = %+v", c.Project.Display)
	}
	// A second init must not clobber user edits.
	path := c.ProjectConfigPath()
	if err := os.WriteFile(path, []byte("version: 1\ncinema:\n  name: Rex\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := InitDir(projectDir); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	c, err = NewConfig(projectDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if c.CinemaName() != "Rex" {
		t.Fatalf("cinema name = %q, want Rex", c.CinemaName())
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
cinema:
  name: "  Rex Palace "
booking:
  prefix: rex
  digits: 5
display:
  empty: "_"
  highlight: "@"
  taken: "x"
ui:
  mode: TUI
logs:
  path: /tmp/rex.log
`)
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.CinemaName() != "Rex Palace" {
		t.Fatalf("cinema name = %q", c.CinemaName())
	}
	if c.Project.Booking.Prefix != "REX" || c.Project.Booking.Digits != 5 {
		t.Fatalf("booking = %+v", c.Project.Booking)
	}
	if c.UIMode() != UIModeTUI {
		t.Fatalf("ui mode = %q", c.UIMode())
	}
	if c.LogPath() != "/tmp/rex.log" {
		t.Fatalf("log path = %s", c.LogPath())
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := map[string]string{
		"long prefix":    "booking:\n  prefix: GICX\n",
		"digits":         "booking:\n  digits: 12\n",
		"glyph length":   "display:\n  empty: \"..\"\n",
		"glyph clash":    "display:\n  empty: \"#\"\n",
		"unknown ui":     "ui:\n  mode: web\n",
		"malformed yaml": "booking: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			projectDir := t.TempDir()
			writeConfig(t, projectDir, body)
			if _, err := NewConfig(projectDir); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, "cinema:\n  name: Rex\nui:\n  mode: console\n")
	t.Setenv("GIC_CINEMA_NAME", "Odeon")
	t.Setenv("GIC_UI_MODE", "tui")
	t.Setenv("GIC_BOOKING_PREFIX", "ode")
	t.Setenv("GIC_LOG_PATH", "custom.log")
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if c.CinemaName() != "Odeon" || c.UIMode() != UIModeTUI || c.Project.Booking.Prefix != "ODE" {
		t.Fatalf("env overrides not applied: %+v", c.Project)
	}
	if c.LogPath() != filepath.Join(projectDir, ".gic", "custom.log") {
		t.Fatalf("log path = %s", c.LogPath())
	}
}

func TestEnvOverrideIsValidated(t *testing.T) {
	t.Setenv("GIC_BOOKING_DIGITS", "0")
	if _, err := NewConfig(t.TempDir()); err == nil {
		t.Fatalf("expected env validation error")
	}
}

func TestSetUIMode(t *testing.T) {
	c, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	if err := c.SetUIMode(" TUI "); err != nil {
		t.Fatalf("SetUIMode: %v", err)
	}
	if c.UIMode() != UIModeTUI {
		t.Fatalf("ui mode = %q", c.UIMode())
	}
	if err := c.SetUIMode("gui"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func writeConfig(t *testing.T, projectDir, body string) {
	t.Helper()
	dir := filepath.Join(projectDir, ".gic")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(strings.TrimSpace(body)+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
}
