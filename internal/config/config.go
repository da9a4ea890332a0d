package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lumipallolabs/diskmap/internal/layout"
	"github.com/lumipallolabs/diskmap/internal/render"
	"github.com/lumipallolabs/diskmap/internal/treemap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Layout  LayoutConfig  `yaml:"layout" toml:"layout"`
	Palette PaletteConfig `yaml:"palette" toml:"palette"`
	Scan    ScanConfig    `yaml:"scan" toml:"scan"`
	UI      UIConfig      `yaml:"ui" toml:"ui"`
}

// LayoutConfig holds the treemap constants, in layout units
type LayoutConfig struct {
	Strategy    string  `yaml:"strategy" toml:"strategy"`
	TitleMargin float64 `yaml:"title_margin" toml:"title_margin"`
	MinSide     float64 `yaml:"min_side" toml:"min_side"`
	MinArea     float64 `yaml:"min_area" toml:"min_area"`
	Inset       float64 `yaml:"inset" toml:"inset"`
}

type PaletteConfig struct {
	Newest string `yaml:"newest" toml:"newest"`
	Oldest string `yaml:"oldest" toml:"oldest"`
	Size   int    `yaml:"size" toml:"size"`
}

type ScanConfig struct {
	Workers int `yaml:"workers" toml:"workers"`
}

type UIConfig struct {
	Watch      bool `yaml:"watch" toml:"watch"`
	DebounceMS int  `yaml:"debounce_ms" toml:"debounce_ms"`
}

func DefaultConfig() *Config {
	opts := treemap.DefaultOptions()
	return &Config{
		Layout: LayoutConfig{
			Strategy:    layout.StrategySquarified,
			TitleMargin: opts.TitleMargin,
			MinSide:     opts.MinSide,
			MinArea:     opts.MinArea,
			Inset:       opts.Inset,
		},
		Palette: PaletteConfig{
			Newest: render.DefaultNewest,
			Oldest: render.DefaultOldest,
			Size:   render.DefaultSize,
		},
		Scan: ScanConfig{
			Workers: runtime.NumCPU(),
		},
		UI: UIConfig{
			Watch:      true,
			DebounceMS: 500,
		},
	}
}

// DefaultPath returns ~/.diskmap/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".diskmap", "config.yaml"), nil
}

// LoadConfig reads a YAML or TOML file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects constants the treemap builder cannot work with
func (c *Config) Validate() error {
	var errs []error
	if _, err := layout.Lookup(c.Layout.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Layout.TitleMargin < 0 {
		errs = append(errs, fmt.Errorf("layout.title_margin must not be negative"))
	}
	if c.Layout.MinSide <= 0 {
		errs = append(errs, fmt.Errorf("layout.min_side must be positive"))
	}
	if c.Layout.MinArea <= 0 {
		errs = append(errs, fmt.Errorf("layout.min_area must be positive"))
	}
	if c.Layout.Inset < 0 {
		errs = append(errs, fmt.Errorf("layout.inset must not be negative"))
	}
	if c.Palette.Size < 1 {
		errs = append(errs, fmt.Errorf("palette.size must be positive"))
	}
	if c.Scan.Workers < 1 {
		errs = append(errs, fmt.Errorf("scan.workers must be positive"))
	}
	if c.UI.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("ui.debounce_ms must not be negative"))
	}
	return errors.Join(errs...)
}

// TreemapOptions converts the layout section to builder options
func (c *Config) TreemapOptions() (treemap.Options, error) {
	strategy, err := layout.Lookup(c.Layout.Strategy)
	if err != nil {
		return treemap.Options{}, err
	}
	return treemap.Options{
		TitleMargin: c.Layout.TitleMargin,
		MinSide:     c.Layout.MinSide,
		MinArea:     c.Layout.MinArea,
		Inset:       c.Layout.Inset,
		PaletteSize: c.Palette.Size,
		Strategy:    strategy,
	}, nil
}

func (c *Config) BuildPalette() (render.Palette, error) {
	return render.NewPalette(c.Palette.Newest, c.Palette.Oldest, c.Palette.Size)
}

func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMS) * time.Millisecond
}
