package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/heightfield"
	"github.com/bpodwinski/gocdlod/internal/engine/terrain"
)

// Config contains scene configuration options.
type Config struct {
	Width  int32
	Height int32

	Terrain terrain.Config
}

// Scene owns the terrain state and its renderer and runs the per-frame
// update and draw sequence.
type Scene struct {
	config Config

	terrain  *terrain.Terrain
	renderer *TerrainRenderer

	// Sky clear color
	ClearColor [3]float32
}

// New initializes OpenGL state and builds the terrain and its renderer
// from the given heightfield. Must be called with a current GL context.
func New(cfg Config, field *heightfield.Grid) (*Scene, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	renderer, err := NewTerrainRenderer(cfg.Terrain.Subdivisions, field)
	if err != nil {
		return nil, err
	}

	t, err := terrain.New(cfg.Terrain, renderer)
	if err != nil {
		renderer.Destroy()
		return nil, err
	}

	return &Scene{
		config:     cfg,
		terrain:    t,
		renderer:   renderer,
		ClearColor: [3]float32{0.53, 0.7, 0.92},
	}, nil
}

// Terrain returns the terrain state for camera-driven updates and style
// toggles.
func (s *Scene) Terrain() *terrain.Terrain {
	return s.terrain
}

// Renderer returns the terrain renderer.
func (s *Scene) Renderer() *TerrainRenderer {
	return s.renderer
}

// Resize updates the GL viewport.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
	gl.Viewport(0, 0, width, height)
}

// Frame updates the chunk selection for the camera and draws the result.
func (s *Scene) Frame(cameraPos mgl32.Vec3, viewProj mgl32.Mat4) (terrain.Frame, error) {
	frame, err := s.terrain.Update(cameraPos, viewProj)
	if err != nil {
		return frame, err
	}

	gl.ClearColor(s.ClearColor[0], s.ClearColor[1], s.ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	s.renderer.Draw(s.terrain, viewProj)

	return frame, nil
}

// Destroy releases the terrain and all GPU resources.
func (s *Scene) Destroy() {
	if s.terrain != nil {
		s.terrain.Close()
		s.terrain = nil
	}
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
}
