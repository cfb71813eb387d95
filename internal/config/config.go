// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Heightmap HeightmapConfig `yaml:"heightmap"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig holds the terrain dimensions and LOD tuning.
type TerrainConfig struct {
	Size            float32 `yaml:"size"`              // world-space side length
	Height          float32 `yaml:"height"`            // vertical extent
	MinLodDistance  float32 `yaml:"min_lod_distance"`  // 0 means size/15
	LodLevels       int     `yaml:"lod_levels"`        // number of LOD bands
	Subdivisions    int     `yaml:"subdivisions"`      // patch grid resolution
	ShowChunk       bool    `yaml:"show_chunk"`        // per-level debug colors
	ShowBoundingBox bool    `yaml:"show_bounding_box"` // chunk AABB wireframes
	Wireframe       bool    `yaml:"wireframe"`
	MixFactor       float32 `yaml:"mix_factor"` // debug color blend weight
}

// HeightmapConfig selects the height source. When Path is empty the
// viewer falls back to procedural noise seeded with Seed.
type HeightmapConfig struct {
	Path       string `yaml:"path"`
	Resolution int    `yaml:"resolution"`
	Seed       int64  `yaml:"seed"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Size:         2000,
			Height:       200,
			LodLevels:    7,
			Subdivisions: 32,
			MixFactor:    0.5,
		},
		Heightmap: HeightmapConfig{
			Resolution: 1024,
			Seed:       1337,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
