package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SectionConfig describes one screen section used by the demo scenes.
type SectionConfig struct {
	Name string `yaml:"name"`
	// Row is the top pixel row; it must be a multiple of 8.
	Row    int `yaml:"row"`
	Column int `yaml:"column"`
	// Pages is the height in 8 pixel pages.
	Pages int `yaml:"pages"`
	Width int `yaml:"width"`
}

// Config is the top-level demo configuration.
type Config struct {
	// Interface selects the transport: "i2c" (default) or "spi".
	Interface string `yaml:"interface"`

	// Bus is the I²C bus or SPI port name; empty uses the first available.
	Bus string `yaml:"bus"`

	// Address is the I²C device address (0x3C or 0x3D).
	Address uint16 `yaml:"address"`

	// DC is the GPIO name of the SPI Data/Command pin.
	DC string `yaml:"dc"`

	// RST is the optional GPIO name of the reset pin.
	RST string `yaml:"rst,omitempty"`

	// SPIHz is the SPI clock; only used when Interface is "spi".
	SPIHz int64 `yaml:"spi_hz"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Contrast is the initial contrast (1-255). 0 or a missing key selects
	// the default 0x7F, as does an out of range value.
	Contrast int `yaml:"contrast"`

	Rotated bool `yaml:"rotated"`

	// RefreshCron is the cron schedule of the clock scene
	// (e.g. "@every 1s" or "* * * * *").
	RefreshCron string `yaml:"refresh"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Sections []SectionConfig `yaml:"sections"`
}

func defaultSections() []SectionConfig {
	return []SectionConfig{
		{Name: "full", Row: 0, Column: 0, Pages: 8, Width: 128},
		{Name: "blank", Row: 16, Column: 25, Pages: 1, Width: 45},
		{Name: "lines", Row: 16, Column: 65, Pages: 3, Width: 32},
		{Name: "text", Row: 0, Column: 0, Pages: 2, Width: 128},
	}
}

// DefaultConfig returns an in-memory default configuration for a 128x64
// I²C module.
func DefaultConfig() *Config {
	return &Config{
		Interface:   "i2c",
		Address:     0x3C,
		SPIHz:       10_000_000,
		Width:       128,
		Height:      64,
		Contrast:    0x7F,
		RefreshCron: "@every 1s",
		LogLevel:    "info",
		Sections:    defaultSections(),
	}
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	d := DefaultConfig()
	c.Interface = strings.ToLower(c.Interface)
	switch c.Interface {
	case "i2c", "spi":
	default:
		c.Interface = d.Interface
	}
	if c.Address == 0 {
		c.Address = d.Address
	}
	if c.SPIHz <= 0 {
		c.SPIHz = d.SPIHz
	}
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	if c.Contrast <= 0 || c.Contrast > 0xFF {
		c.Contrast = d.Contrast
	}
	if c.RefreshCron == "" {
		c.RefreshCron = d.RefreshCron
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Sections == nil {
		c.Sections = d.Sections
	}
}

// Section returns the section called name.
func (c *Config) Section(name string) (SectionConfig, error) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, nil
		}
	}
	return SectionConfig{}, fmt.Errorf("config: no section named %q", name)
}

// Load loads configuration from the given YAML path.
//
// When the file does not exist a default config is written there with 0600
// permissions and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ssd1306-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
