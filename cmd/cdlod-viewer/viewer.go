package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/bpodwinski/gocdlod/internal/config"
	"github.com/bpodwinski/gocdlod/internal/engine/camera"
	"github.com/bpodwinski/gocdlod/internal/engine/heightfield"
	"github.com/bpodwinski/gocdlod/internal/engine/input"
	"github.com/bpodwinski/gocdlod/internal/engine/scene"
	"github.com/bpodwinski/gocdlod/internal/engine/terrain"
	"github.com/bpodwinski/gocdlod/internal/engine/window"
	"github.com/bpodwinski/gocdlod/internal/logger"
)

// viewer owns the window, the scene and the camera and runs the frame
// loop.
type viewer struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	scene  *scene.Scene
	camera *camera.OrbitCamera

	dragging bool
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{cfg: cfg}

	// Create window first; the GL context must exist before any GL call.
	var err error
	v.window, err = window.New(window.Config{
		Title:      "CDLOD Terrain Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	field, err := loadHeightfield(cfg)
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.scene, err = scene.New(scene.Config{
		Width:   int32(cfg.Graphics.Width),
		Height:  int32(cfg.Graphics.Height),
		Terrain: terrainConfig(cfg),
	}, field)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	dw, dh := v.window.DrawableSize()
	v.scene.Resize(int32(dw), int32(dh))

	v.camera = camera.NewOrbitCamera()
	v.camera.FitTerrain(cfg.Terrain.Size, cfg.Terrain.Height)

	v.input = input.New()

	logger.Info("viewer initialized",
		zap.Float32("terrain_size", cfg.Terrain.Size),
		zap.Int("lod_levels", cfg.Terrain.LodLevels),
		zap.Int("subdivisions", cfg.Terrain.Subdivisions),
	)
	return v, nil
}

func terrainConfig(cfg *config.Config) terrain.Config {
	return terrain.Config{
		Size:            cfg.Terrain.Size,
		Height:          cfg.Terrain.Height,
		MinLodDistance:  cfg.Terrain.MinLodDistance,
		LodLevels:       cfg.Terrain.LodLevels,
		Subdivisions:    cfg.Terrain.Subdivisions,
		ShowChunk:       cfg.Terrain.ShowChunk,
		ShowBoundingBox: cfg.Terrain.ShowBoundingBox,
		Wireframe:       cfg.Terrain.Wireframe,
		MixFactor:       cfg.Terrain.MixFactor,
	}
}

// loadHeightfield picks the configured heightmap image or falls back to
// procedural noise.
func loadHeightfield(cfg *config.Config) (*heightfield.Grid, error) {
	res := cfg.Heightmap.Resolution
	if res < 2 {
		res = 1024
	}

	if cfg.Heightmap.Path != "" {
		logger.Info("loading heightmap", zap.String("path", cfg.Heightmap.Path))
		grid, err := heightfield.LoadImage(cfg.Heightmap.Path, res)
		if err != nil {
			return nil, fmt.Errorf("failed to load heightmap: %w", err)
		}
		return grid, nil
	}

	logger.Info("generating procedural heightfield", zap.Int64("seed", cfg.Heightmap.Seed))
	return heightfield.Bake(heightfield.NewNoise(cfg.Heightmap.Seed), res)
}

// Run starts the frame loop.
func (v *viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	statsTimer := time.Now()
	var lastFrame terrain.Frame

	logger.Info("starting frame loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.handleHeldKeys(dt)

		// 2. Update selection and render
		w, h := v.window.GetSize()
		aspect := float32(w) / float32(h)
		viewProj := v.camera.ViewProjection(aspect)

		frame, err := v.scene.Frame(v.camera.Position(), viewProj)
		if err != nil {
			return fmt.Errorf("frame error: %w", err)
		}
		lastFrame = frame

		// 3. Present
		v.window.SwapBuffers()

		// Title-bar stats once per second
		frameCount++
		if time.Since(statsTimer) >= time.Second {
			v.window.SetTitle(fmt.Sprintf(
				"CDLOD Terrain Viewer | %d fps | %d chunks (%d visited, %d culled)",
				frameCount, lastFrame.Selected, lastFrame.Visited, lastFrame.Culled))
			frameCount = 0
			statsTimer = time.Now()
		}
	}

	return nil
}

func (v *viewer) handleEvents() {
	t := v.scene.Terrain()

	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			dw, dh := v.window.DrawableSize()
			v.scene.Resize(int32(dw), int32(dh))

		case input.EventKeyDown:
			v.handleKey(event.Key, t)

		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = true
			}

		case input.EventMouseUp:
			if event.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}

		case input.EventMouseMove:
			if v.dragging {
				v.camera.HandleDrag(float32(event.RelX), float32(event.RelY))
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(event.Wheel)
		}
	}
}

func (v *viewer) handleKey(key sdl.Scancode, t *terrain.Terrain) {
	style := t.Style()

	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false

	case sdl.SCANCODE_F1:
		style.Wireframe = !style.Wireframe
		t.SetStyle(style)
		logger.Info("wireframe toggled", zap.Bool("enabled", style.Wireframe))

	case sdl.SCANCODE_F2:
		style.ShowChunk = !style.ShowChunk
		t.SetStyle(style)
		logger.Info("chunk colors toggled", zap.Bool("enabled", style.ShowChunk))

	case sdl.SCANCODE_F3:
		style.ShowBoundingBox = !style.ShowBoundingBox
		t.SetStyle(style)
		logger.Info("bounding boxes toggled", zap.Bool("enabled", style.ShowBoundingBox))

	case sdl.SCANCODE_LEFTBRACKET:
		style.MixFactor -= 0.1
		if style.MixFactor < 0 {
			style.MixFactor = 0
		}
		t.SetStyle(style)

	case sdl.SCANCODE_RIGHTBRACKET:
		style.MixFactor += 0.1
		if style.MixFactor > 1 {
			style.MixFactor = 1
		}
		t.SetStyle(style)

	case sdl.SCANCODE_R:
		v.camera.FitTerrain(v.cfg.Terrain.Size, v.cfg.Terrain.Height)
	}
}

// handleHeldKeys pans the camera with WASD plus Q/E for vertical motion.
func (v *viewer) handleHeldKeys(dt float32) {
	// Pan speed in camera units per second, before the distance scaling
	// inside HandleMovement.
	pan := 60 * dt

	var forward, right, up float32
	if input.KeyboardHeld(sdl.SCANCODE_W) {
		forward += pan
	}
	if input.KeyboardHeld(sdl.SCANCODE_S) {
		forward -= pan
	}
	if input.KeyboardHeld(sdl.SCANCODE_D) {
		right += pan
	}
	if input.KeyboardHeld(sdl.SCANCODE_A) {
		right -= pan
	}
	if input.KeyboardHeld(sdl.SCANCODE_E) {
		up += pan
	}
	if input.KeyboardHeld(sdl.SCANCODE_Q) {
		up -= pan
	}

	if forward != 0 || right != 0 || up != 0 {
		v.camera.HandleMovement(forward, right, up)
	}
}

// Close releases the scene and the window.
func (v *viewer) Close() {
	logger.Info("closing viewer")
	if v.scene != nil {
		v.scene.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
