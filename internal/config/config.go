// Package config loads and saves the persistent mezdisk settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lumipallolabs/mezdisk/internal/scanner"
)

// ErrInvalid is wrapped by every validation and unknown-key error
var ErrInvalid = errors.New("invalid config")

// Config holds the scan and report settings
type Config struct {
	MaxDepth       int    `toml:"max_depth"`
	FollowSymlinks bool   `toml:"follow_symlinks"`
	SizeMode       string `toml:"size_mode"`
	OneFileSystem  bool   `toml:"one_file_system"`
	Parallel       bool   `toml:"parallel"`
	Workers        int    `toml:"workers"`

	TreeDepth     int  `toml:"tree_depth"`
	TreemapHeight int  `toml:"treemap_height"`
	TreemapItems  int  `toml:"treemap_items"`
	LargestItems  int  `toml:"largest_items"`
	Progress      bool `toml:"progress"`
	SniffTypes    bool `toml:"sniff_types"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		MaxDepth:      scanner.Unbounded,
		SizeMode:      scanner.Apparent.String(),
		TreeDepth:     4,
		TreemapHeight: 18,
		TreemapItems:  25,
		LargestItems:  12,
		Progress:      true,
	}
}

// DefaultPath returns the default config file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mezdisk.toml"
	}
	return filepath.Join(home, ".mezdisk", "config.toml")
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory
func Save(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Encode renders cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	if c.MaxDepth < scanner.Unbounded {
		return fmt.Errorf("%w: max_depth must be -1 or greater, got %d", ErrInvalid, c.MaxDepth)
	}
	if _, ok := scanner.ParseSizeMode(c.SizeMode); !ok {
		return fmt.Errorf("%w: size_mode must be apparent or allocated, got %q", ErrInvalid, c.SizeMode)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", ErrInvalid)
	}
	if c.TreeDepth < 0 {
		return fmt.Errorf("%w: tree_depth must not be negative", ErrInvalid)
	}
	if c.TreemapHeight < 1 {
		return fmt.Errorf("%w: treemap_height must be at least 1", ErrInvalid)
	}
	if c.TreemapItems < 0 || c.LargestItems < 0 {
		return fmt.Errorf("%w: item counts must not be negative", ErrInvalid)
	}
	return nil
}

// ScannerConfig returns the scanner settings, reporting visits to onVisit
func (c Config) ScannerConfig(onVisit func(string)) scanner.Config {
	mode, ok := scanner.ParseSizeMode(c.SizeMode)
	if !ok {
		mode = scanner.Apparent
	}
	return scanner.Config{
		MaxDepth:       c.MaxDepth,
		FollowSymlinks: c.FollowSymlinks,
		OnVisit:        onVisit,
		SizeMode:       mode,
		OneFileSystem:  c.OneFileSystem,
	}
}
