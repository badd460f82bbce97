// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds all assistant configuration.
type Config struct {
	Storage   Storage   `yaml:"storage"`
	Birthdays Birthdays `yaml:"birthdays"`
	Notes     Notes     `yaml:"notes"`
	Display   Display   `yaml:"display"`
	Log       Log       `yaml:"log"`
}

// Storage holds persistence settings.
type Storage struct {
	Driver           string `yaml:"driver"`            // "file" | "sqlite"
	Path             string `yaml:"path"`              // Data file or database path
	AutosaveInterval int    `yaml:"autosave_interval"` // Commands between autosaves; 0 disables
}

// Birthdays holds upcoming-birthday query settings.
type Birthdays struct {
	Window int `yaml:"window"` // Days looked ahead when birthdays is given no argument
}

// Notes holds note book settings.
type Notes struct {
	IDPolicy string `yaml:"id_policy"` // "monotonic" | "size"
}

// Display holds front end settings.
type Display struct {
	Mode  string `yaml:"mode"`  // "auto" | "tui" | "plain"
	Color string `yaml:"color"` // "auto" | "always" | "never"
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty disables logging
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Driver:           "file",
			Path:             ".assistant/data.json",
			AutosaveInterval: 5,
		},
		Birthdays: Birthdays{
			Window: 7,
		},
		Notes: Notes{
			IDPolicy: "monotonic",
		},
		Display: Display{
			Mode:  "auto",
			Color: "auto",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: storage.driver must be \"file\" or \"sqlite\", got %q", c.Storage.Driver)
	}
	if c.Storage.Path == "" {
		return errors.New("config: storage.path cannot be empty")
	}
	if c.Storage.AutosaveInterval < 0 {
		return fmt.Errorf("config: storage.autosave_interval must be non-negative, got %d", c.Storage.AutosaveInterval)
	}
	if c.Birthdays.Window < 0 {
		return fmt.Errorf("config: birthdays.window must be non-negative, got %d", c.Birthdays.Window)
	}
	switch c.Notes.IDPolicy {
	case "monotonic", "size":
	default:
		return fmt.Errorf("config: notes.id_policy must be \"monotonic\" or \"size\", got %q", c.Notes.IDPolicy)
	}
	switch c.Display.Mode {
	case "auto", "tui", "plain":
	default:
		return fmt.Errorf("config: display.mode must be \"auto\", \"tui\" or \"plain\", got %q", c.Display.Mode)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: display.color must be \"auto\", \"always\" or \"never\", got %q", c.Display.Color)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ASSISTANT_STORAGE_DRIVER, ASSISTANT_DATA_PATH,
// ASSISTANT_AUTOSAVE_INTERVAL, ASSISTANT_LOG_LEVEL, ASSISTANT_LOG_FILE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ASSISTANT_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("ASSISTANT_DATA_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("ASSISTANT_AUTOSAVE_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ASSISTANT_AUTOSAVE_INTERVAL %q: %w", v, err)
		}
		c.Storage.AutosaveInterval = n
	}
	if v := os.Getenv("ASSISTANT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ASSISTANT_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage   *rawStorage   `yaml:"storage"`
	Birthdays *rawBirthdays `yaml:"birthdays"`
	Notes     *rawNotes     `yaml:"notes"`
	Display   *rawDisplay   `yaml:"display"`
	Log       *rawLog       `yaml:"log"`
}

type rawStorage struct {
	Driver           *string `yaml:"driver"`
	Path             *string `yaml:"path"`
	AutosaveInterval *int    `yaml:"autosave_interval"`
}

type rawBirthdays struct {
	Window *int `yaml:"window"`
}

type rawNotes struct {
	IDPolicy *string `yaml:"id_policy"`
}

type rawDisplay struct {
	Mode  *string `yaml:"mode"`
	Color *string `yaml:"color"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if s := layer.Storage; s != nil {
		setIf(&c.Storage.Driver, s.Driver)
		setIf(&c.Storage.Path, s.Path)
		setIf(&c.Storage.AutosaveInterval, s.AutosaveInterval)
	}
	if b := layer.Birthdays; b != nil {
		setIf(&c.Birthdays.Window, b.Window)
	}
	if n := layer.Notes; n != nil {
		setIf(&c.Notes.IDPolicy, n.IDPolicy)
	}
	if d := layer.Display; d != nil {
		setIf(&c.Display.Mode, d.Mode)
		setIf(&c.Display.Color, d.Color)
	}
	if l := layer.Log; l != nil {
		setIf(&c.Log.Level, l.Level)
		setIf(&c.Log.File, l.File)
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
