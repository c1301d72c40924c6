package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumipallolabs/mezdisk/internal/scanner"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "max_depth = 3\nsize_mode = \"allocated\"\nparallel = true\ntreemap_items = 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxDepth != 3 || cfg.SizeMode != "allocated" || !cfg.Parallel || cfg.TreemapItems != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}
	// Untouched keys keep their defaults
	if cfg.TreeDepth != 4 || cfg.LargestItems != 12 || !cfg.Progress {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"unknown key", "colour = \"red\"\n", true},
		{"bad size mode", "size_mode = \"huge\"\n", true},
		{"depth below unbounded", "max_depth = -2\n", true},
		{"zero treemap height", "treemap_height = 0\n", true},
		{"syntax error", "max_depth = = 1\n", false},
		{"wrong type", "max_depth = \"deep\"\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg, err := Load(path)
			if err == nil {
				t.Fatalf("expected an error, got %+v", cfg)
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (%v)", !tt.invalid, tt.invalid, err)
			}
			if cfg != Default() {
				t.Errorf("expected defaults alongside the error, got %+v", cfg)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.FollowSymlinks = true
	cfg.Workers = 8
	cfg.Progress = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != cfg {
		t.Errorf("got %+v, want %+v", loaded, cfg)
	}
}

func TestScannerConfig(t *testing.T) {
	cfg := Default()
	cfg.MaxDepth = 2
	cfg.SizeMode = "allocated"
	cfg.OneFileSystem = true

	visited := 0
	sc := cfg.ScannerConfig(func(string) { visited++ })
	if sc.MaxDepth != 2 || sc.SizeMode != scanner.Allocated || !sc.OneFileSystem || sc.FollowSymlinks {
		t.Errorf("unexpected scanner config %+v", sc)
	}
	sc.OnVisit("x")
	if visited != 1 {
		t.Errorf("expected OnVisit to be wired through")
	}
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	if filepath.Base(path) != "config.toml" && filepath.Base(path) != ".mezdisk.toml" {
		t.Errorf("unexpected default path %s", path)
	}
}
