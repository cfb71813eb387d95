package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagHeightmap  = flag.String("heightmap", "", "Path to a heightmap image")
	flagSeed       = flag.Int64("seed", 0, "Procedural heightfield seed")
	flagLodLevels  = flag.Int("lod-levels", 0, "Number of LOD bands")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagHeightmap != "" {
		cfg.Heightmap.Path = *flagHeightmap
	}
	if *flagSeed != 0 {
		cfg.Heightmap.Seed = *flagSeed
	}
	if *flagLodLevels > 0 {
		cfg.Terrain.LodLevels = *flagLodLevels
	}
	if *flagWireframe {
		cfg.Terrain.Wireframe = true
	}
}
