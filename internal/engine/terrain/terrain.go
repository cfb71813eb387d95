// Package terrain ties the quadtree, LOD selection, chunk lifecycle and
// parameter binding into the per-frame update sequence. The whole
// sequence runs synchronously on the thread driving rendering; nothing
// here is safe for concurrent use.
package terrain

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/chunk"
	"github.com/bpodwinski/gocdlod/internal/engine/lod"
	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
	"github.com/bpodwinski/gocdlod/internal/engine/uniform"
)

// Config is the immutable terrain configuration, validated once at
// construction.
type Config struct {
	Size           float32 // world-space side length of the square footprint
	Height         float32 // vertical extent
	MinLodDistance float32 // distance threshold of the finest band; 0 means Size/15
	LodLevels      int     // number of LOD bands
	Subdivisions   int     // grid resolution of a single patch

	ShowChunk       bool
	ShowBoundingBox bool
	Wireframe       bool
	MixFactor       float32
}

// DefaultConfig returns the standard terrain setup.
func DefaultConfig() Config {
	return Config{
		Size:         2000,
		Height:       200,
		LodLevels:    7,
		Subdivisions: 32,
	}
}

// EffectiveMinLodDistance resolves the finest-band threshold, defaulting
// to Size/15 when unset.
func (c Config) EffectiveMinLodDistance() float32 {
	if c.MinLodDistance > 0 {
		return c.MinLodDistance
	}
	return c.Size / 15
}

// Validate fails fast on a configuration the core cannot run with.
func (c Config) Validate() error {
	if c.Size <= 0 || gomath.IsNaN(float64(c.Size)) || gomath.IsInf(float64(c.Size), 0) {
		return fmt.Errorf("terrain: size must be a positive finite number, got %g", c.Size)
	}
	if gomath.IsNaN(float64(c.Height)) || gomath.IsInf(float64(c.Height), 0) {
		return fmt.Errorf("terrain: height must be finite, got %g", c.Height)
	}
	if c.MinLodDistance < 0 {
		return fmt.Errorf("terrain: min lod distance must be >= 0, got %g", c.MinLodDistance)
	}
	if c.LodLevels < 1 || c.LodLevels > lod.MaxLevels {
		return fmt.Errorf("terrain: lod levels must be in [1, %d], got %d", lod.MaxLevels, c.LodLevels)
	}
	if c.Subdivisions < 1 {
		return fmt.Errorf("terrain: subdivisions must be >= 1, got %d", c.Subdivisions)
	}
	if c.MixFactor < 0 || c.MixFactor > 1 {
		return fmt.Errorf("terrain: mix factor must be in [0,1], got %g", c.MixFactor)
	}
	return nil
}

// Terrain owns the static quadtree and the per-frame selection,
// reconciliation and parameter-binding state.
type Terrain struct {
	cfg      Config
	tree     *quadtree.Tree
	selector *lod.Selector
	chunks   *chunk.Manager
	style    uniform.Style

	selection lod.Selection
	cameraPos mgl32.Vec3
}

// New builds the quadtree and wires the selector and lifecycle manager.
// The factory is the rendering collaborator creating patch instances.
func New(cfg Config, factory chunk.PatchFactory) (*Terrain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tree, err := quadtree.Build(cfg.Size, cfg.Height, cfg.LodLevels)
	if err != nil {
		return nil, err
	}

	selector, err := lod.NewSelector(tree, cfg.EffectiveMinLodDistance())
	if err != nil {
		return nil, err
	}

	return &Terrain{
		cfg:      cfg,
		tree:     tree,
		selector: selector,
		chunks:   chunk.NewManager(factory),
		style: uniform.Style{
			Wireframe:       cfg.Wireframe,
			ShowChunk:       cfg.ShowChunk,
			ShowBoundingBox: cfg.ShowBoundingBox,
			MixFactor:       cfg.MixFactor,
		},
	}, nil
}

// Frame summarizes one update pass.
type Frame struct {
	Selected int
	Created  int
	Disposed int
	Visited  int
	Culled   int
}

// Update runs the per-frame sequence: select visible chunks, reconcile
// patch instances against the selection, and remember the camera for
// parameter binding.
func (t *Terrain) Update(cameraPos mgl32.Vec3, viewProj mgl32.Mat4) (Frame, error) {
	t.selector.Select(cameraPos, viewProj, &t.selection)

	created, disposed, err := t.chunks.Reconcile(t.tree, &t.selection)
	if err != nil {
		return Frame{}, err
	}

	t.cameraPos = cameraPos

	return Frame{
		Selected: t.selection.Stats.Selected,
		Created:  created,
		Disposed: disposed,
		Visited:  t.selection.Stats.Visited,
		Culled:   t.selection.Stats.Culled,
	}, nil
}

// EachChunk calls fn for every attached instance with its freshly
// computed parameter set.
func (t *Terrain) EachChunk(fn func(inst chunk.Instance, params uniform.ParameterSet)) {
	t.chunks.Each(func(node, level int32, inst chunk.Instance) {
		fn(inst, uniform.Compute(t.tree, node, level, t.selector.Ranges(), t.cameraPos, t.cfg.Subdivisions, t.style))
	})
}

// SetStyle replaces the render style applied to every attached instance
// at bind time.
func (t *Terrain) SetStyle(s uniform.Style) {
	t.style = s
}

// Style returns the current render style.
func (t *Terrain) Style() uniform.Style {
	return t.style
}

// Config returns the terrain configuration.
func (t *Terrain) Config() Config {
	return t.cfg
}

// Tree returns the immutable quadtree.
func (t *Terrain) Tree() *quadtree.Tree {
	return t.tree
}

// Ranges returns the LOD range table, finest band first.
func (t *Terrain) Ranges() []float32 {
	return t.selector.Ranges()
}

// Close disposes every attached patch instance.
func (t *Terrain) Close() {
	t.chunks.Close()
}
