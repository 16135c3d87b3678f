// Package config loads knightroutes settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the complete knightroutes configuration
type Config struct {
	Output OutputConfig `yaml:"output"`
	Search SearchConfig `yaml:"search"`
	Cache  CacheConfig  `yaml:"cache"`
	Image  ImageConfig  `yaml:"image"`

	// LoadedFrom is the file the configuration was read from, empty for defaults.
	LoadedFrom string `yaml:"-"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	Separator string `yaml:"separator"`
	Draw      bool   `yaml:"draw"`
	Verbose   bool   `yaml:"verbose"`
	Summary   bool   `yaml:"summary"`
}

// SearchConfig contains search settings
type SearchConfig struct {
	SortedPredecessors bool `yaml:"sorted_predecessors"`
	Workers            int  `yaml:"workers"`
}

// CacheConfig contains result cache settings
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// ImageConfig contains board image settings
type ImageConfig struct {
	SquareSize int `yaml:"square_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Separator: "-",
		},
		Search: SearchConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Image: ImageConfig{
			SquareSize: 64,
		},
	}
}

// Load loads configuration from a YAML file. Keys missing from the file keep their defaults.
func Load(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, err
	}
	cfg.LoadedFrom = filename
	return cfg, nil
}

// LoadOrDefault is like Load but returns the defaults when the file does not exist.
func LoadOrDefault(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	cfg, err := Load(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse reads YAML configuration over the defaults and validates it.
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Output.Separator == "" {
		return errors.New("output.separator must not be empty")
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Image.SquareSize < 16 || c.Image.SquareSize > 512 {
		return fmt.Errorf("image.square_size must be between 16 and 512, got %d", c.Image.SquareSize)
	}
	return nil
}

// Write encodes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
