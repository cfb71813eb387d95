package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Test terrain defaults
	if cfg.Terrain.Size != 2000 {
		t.Errorf("expected terrain size 2000, got %g", cfg.Terrain.Size)
	}
	if cfg.Terrain.Height != 200 {
		t.Errorf("expected terrain height 200, got %g", cfg.Terrain.Height)
	}
	if cfg.Terrain.MinLodDistance != 0 {
		t.Errorf("expected min lod distance 0 (auto), got %g", cfg.Terrain.MinLodDistance)
	}
	if cfg.Terrain.LodLevels != 7 {
		t.Errorf("expected 7 lod levels, got %d", cfg.Terrain.LodLevels)
	}
	if cfg.Terrain.Subdivisions != 32 {
		t.Errorf("expected 32 subdivisions, got %d", cfg.Terrain.Subdivisions)
	}
	if cfg.Terrain.Wireframe {
		t.Error("expected wireframe to be false by default")
	}

	// Test heightmap defaults
	if cfg.Heightmap.Path != "" {
		t.Errorf("expected empty heightmap path, got %s", cfg.Heightmap.Path)
	}
	if cfg.Heightmap.Resolution != 1024 {
		t.Errorf("expected heightmap resolution 1024, got %d", cfg.Heightmap.Resolution)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

terrain:
  size: 4000
  height: 500
  min_lod_distance: 300
  lod_levels: 6
  subdivisions: 64
  show_chunk: true
  wireframe: true
  mix_factor: 0.8

heightmap:
  path: "mountains.png"
  resolution: 2048
  seed: 99

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1080 {
		t.Errorf("expected height 1080, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}

	if cfg.Terrain.Size != 4000 {
		t.Errorf("expected terrain size 4000, got %g", cfg.Terrain.Size)
	}
	if cfg.Terrain.MinLodDistance != 300 {
		t.Errorf("expected min lod distance 300, got %g", cfg.Terrain.MinLodDistance)
	}
	if cfg.Terrain.LodLevels != 6 {
		t.Errorf("expected 6 lod levels, got %d", cfg.Terrain.LodLevels)
	}
	if !cfg.Terrain.ShowChunk {
		t.Error("expected show_chunk to be true")
	}
	if !cfg.Terrain.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if cfg.Terrain.MixFactor != 0.8 {
		t.Errorf("expected mix factor 0.8, got %g", cfg.Terrain.MixFactor)
	}

	if cfg.Heightmap.Path != "mountains.png" {
		t.Errorf("expected heightmap path 'mountains.png', got %s", cfg.Heightmap.Path)
	}
	if cfg.Heightmap.Resolution != 2048 {
		t.Errorf("expected heightmap resolution 2048, got %d", cfg.Heightmap.Resolution)
	}
	if cfg.Heightmap.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Heightmap.Seed)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
terrain:
  size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "saved", "config.yaml")

	cfg := Default()
	cfg.Terrain.Size = 8000
	cfg.Terrain.LodLevels = 8
	cfg.Heightmap.Path = "alps.png"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}

	if loaded.Terrain.Size != 8000 {
		t.Errorf("expected terrain size 8000 after reload, got %g", loaded.Terrain.Size)
	}
	if loaded.Terrain.LodLevels != 8 {
		t.Errorf("expected 8 lod levels after reload, got %d", loaded.Terrain.LodLevels)
	}
	if loaded.Heightmap.Path != "alps.png" {
		t.Errorf("expected heightmap path 'alps.png' after reload, got %s", loaded.Heightmap.Path)
	}
}

func TestSaveToUnwritablePath(t *testing.T) {
	// A regular file where a parent directory is needed.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	cfg := Default()
	err := cfg.SaveTo(filepath.Join(blocker, "nested", "config.yaml"))
	if err == nil {
		t.Fatal("expected error saving under a regular file, got nil")
	}
	if !strings.Contains(err.Error(), "config: save") {
		t.Errorf("error %q missing save context", err)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "heightmap flag",
			setup: func() {
				*flagHeightmap = "custom.png"
			},
			verify: func(cfg *Config) {
				if cfg.Heightmap.Path != "custom.png" {
					t.Errorf("expected heightmap 'custom.png', got %s", cfg.Heightmap.Path)
				}
			},
			teardown: func() {
				*flagHeightmap = ""
			},
		},
		{
			name: "lod levels and wireframe flags",
			setup: func() {
				*flagLodLevels = 5
				*flagWireframe = true
			},
			verify: func(cfg *Config) {
				if cfg.Terrain.LodLevels != 5 {
					t.Errorf("expected 5 lod levels, got %d", cfg.Terrain.LodLevels)
				}
				if !cfg.Terrain.Wireframe {
					t.Error("expected wireframe to be true with wireframe flag")
				}
			},
			teardown: func() {
				*flagLodLevels = 0
				*flagWireframe = false
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
terrain:
  lod_levels: 4
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}

	// LOD levels should be from file since no flag override
	if cfg.Terrain.LodLevels != 4 {
		t.Errorf("expected 4 lod levels from file, got %d", cfg.Terrain.LodLevels)
	}
}
