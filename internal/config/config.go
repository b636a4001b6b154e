// internal/config/config.go
//
// This package handles configuration and the .gic directory structure.
// A project that runs the booking console gets a .gic/ folder holding the
// config file and the journey log.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".gic"

	UIModeConsole = "console"
	UIModeTUI     = "tui"

	defaultCinemaName = "GIC Cinemas"
	defaultIDPrefix   = "GIC"
	defaultIDDigits   = 4
)

const defaultProjectConfigYAML = `# GIC Cinemas booking console configuration
version: 1

cinema:
  name: GIC Cinemas

# Booking ids are <prefix><zero-padded sequence>, e.g. GIC0001.
booking:
  prefix: GIC
  digits: 4

# Single-character glyphs used by the seat map.
display:
  empty: "."
  highlight: "o"
  taken: "#"

# console: line prompts on stdin/stdout. tui: full-screen terminal UI.
ui:
  mode: console

logs:
  path: logs/journey.log
`

var prefixPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// CinemaConfig names the venue shown in menus and farewells.
type CinemaConfig struct {
	Name string `yaml:"name" env:"NAME"`
}

// BookingConfig controls booking id formatting.
type BookingConfig struct {
	Prefix string `yaml:"prefix" env:"PREFIX"`
	Digits int    `yaml:"digits" env:"DIGITS"`
}

// DisplayConfig holds the seat map glyphs.
type DisplayConfig struct {
	Empty     string `yaml:"empty"`
	Highlight string `yaml:"highlight"`
	Taken     string `yaml:"taken"`
}

// UIConfig selects the front end.
type UIConfig struct {
	Mode string `yaml:"mode" env:"MODE"`
}

// LogsConfig locates the journey log. Relative paths resolve under .gic/.
type LogsConfig struct {
	Path string `yaml:"path" env:"PATH"`
}

// ProjectConfig models .gic/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Cinema  CinemaConfig  `yaml:"cinema" envPrefix:"CINEMA_"`
	Booking BookingConfig `yaml:"booking" envPrefix:"BOOKING_"`
	Display DisplayConfig `yaml:"display"`
	UI      UIConfig      `yaml:"ui" envPrefix:"UI_"`
	Logs    LogsConfig    `yaml:"logs" envPrefix:"LOG_"`
}

// Config holds the runtime configuration for the booking console.
type Config struct {
	// ProjectDir is the directory the console was started from
	ProjectDir string

	// StateDir is ProjectDir/.gic
	StateDir string

	Project ProjectConfig
}

// InitDir creates the .gic directory structure in the given project
// directory and writes a commented default config when none exists.
//
// Structure created:
// .gic/
// ├── config.yaml
// └── logs/         <- journey log
func InitDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, ProjectDirName)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig loads .gic/config.yaml (if present) and applies GIC_* environment
// overrides on top of it.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, ProjectDirName),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// LogPath returns the absolute journey log location.
func (c *Config) LogPath() string {
	p := c.Project.Logs.Path
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.StateDir, p)
}

func (c *Config) CinemaName() string { return c.Project.Cinema.Name }
func (c *Config) UIMode() string     { return c.Project.UI.Mode }

// SetUIMode overrides the front end for this run (not persisted).
func (c *Config) SetUIMode(mode string) error {
	mode = normalizeMode(mode)
	if mode != UIModeConsole && mode != UIModeTUI {
		return fmt.Errorf("config: ui mode must be %q or %q, got %q", UIModeConsole, UIModeTUI, mode)
	}
	c.Project.UI.Mode = mode
	return nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func (c *Config) applyEnv() error {
	if err := env.ParseWithOptions(&c.Project, env.Options{Prefix: "GIC_"}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Cinema.Name) == "" {
		pc.Cinema.Name = defaultCinemaName
	}
	if strings.TrimSpace(pc.Booking.Prefix) == "" {
		pc.Booking.Prefix = defaultIDPrefix
	}
	if pc.Booking.Digits == 0 {
		pc.Booking.Digits = defaultIDDigits
	}
	if pc.Display.Empty == "" {
		pc.Display.Empty = "."
	}
	if pc.Display.Highlight == "" {
		pc.Display.Highlight = "o"
	}
	if pc.Display.Taken == "" {
		pc.Display.Taken = "#"
	}
	if strings.TrimSpace(pc.UI.Mode) == "" {
		pc.UI.Mode = UIModeConsole
	}
	if strings.TrimSpace(pc.Logs.Path) == "" {
		pc.Logs.Path = filepath.Join("logs", "journey.log")
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Cinema.Name = strings.TrimSpace(pc.Cinema.Name)
	pc.Booking.Prefix = strings.ToUpper(strings.TrimSpace(pc.Booking.Prefix))
	pc.UI.Mode = normalizeMode(pc.UI.Mode)
	pc.Logs.Path = strings.TrimSpace(pc.Logs.Path)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Cinema.Name == "" {
		return fmt.Errorf("cinema.name is required")
	}
	if !prefixPattern.MatchString(pc.Booking.Prefix) {
		return fmt.Errorf("booking.prefix must be three letters, got %q", pc.Booking.Prefix)
	}
	if pc.Booking.Digits < 1 || pc.Booking.Digits > 9 {
		return fmt.Errorf("booking.digits must be between 1 and 9, got %d", pc.Booking.Digits)
	}
	glyphs := map[string]string{
		"display.empty":     pc.Display.Empty,
		"display.highlight": pc.Display.Highlight,
		"display.taken":     pc.Display.Taken,
	}
	for key, glyph := range glyphs {
		if utf8.RuneCountInString(glyph) != 1 || strings.TrimSpace(glyph) == "" {
			return fmt.Errorf("%s must be a single visible character, got %q", key, glyph)
		}
	}
	if pc.Display.Empty == pc.Display.Highlight || pc.Display.Empty == pc.Display.Taken || pc.Display.Highlight == pc.Display.Taken {
		return fmt.Errorf("display glyphs must be distinct")
	}
	switch pc.UI.Mode {
	case UIModeConsole, UIModeTUI:
	default:
		return fmt.Errorf("ui.mode must be %q or %q", UIModeConsole, UIModeTUI)
	}
	if pc.Logs.Path == "" {
		return fmt.Errorf("logs.path is required")
	}
	return nil
}

func normalizeMode(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
