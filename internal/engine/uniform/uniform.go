// Package uniform computes the per-chunk parameter set consumed by the
// rendering collaborator. The computation is pure; nothing is retained
// between calls.
package uniform

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/lod"
	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
)

// Palette is the fixed 8-entry debug color cycle, indexed by the node's
// level mod 8.
var Palette = [8][3]float32{
	{0.9, 0.25, 0.25},
	{0.25, 0.9, 0.25},
	{0.25, 0.35, 0.9},
	{0.9, 0.9, 0.25},
	{0.9, 0.25, 0.9},
	{0.25, 0.9, 0.9},
	{0.95, 0.6, 0.2},
	{0.75, 0.75, 0.75},
}

// Style is the render style applied to every attached instance at bind
// time. Toggling a style never mutates the tree or the instances; the
// renderer reads the current value each frame.
type Style struct {
	Wireframe       bool
	ShowChunk       bool // tint chunks with their debug color
	ShowBoundingBox bool
	MixFactor       float32 // debug blend weight in [0,1]
}

// ParameterSet is the full per-instance uniform block pushed to the
// rendering collaborator.
type ParameterSet struct {
	// UV mapping of the node's patch space into terrain texture space.
	UVOffset mgl32.Vec2
	UVScale  mgl32.Vec2

	// World transform of the patch: XZ = PatchOrigin + uv*PatchSize.
	PatchOrigin mgl32.Vec2
	PatchSize   mgl32.Vec2

	DebugColor [3]float32

	// LOD range table, fixed-size to match the GLSL-side array.
	Ranges     [lod.MaxLevels]float32
	RangeCount int32

	CameraPos    mgl32.Vec3
	Subdivisions int32
	Level        int32 // band the chunk was selected at

	Style Style
}

// Compute derives the parameter set for one attached chunk. node indexes
// the tree arena, level is the band the chunk was selected at.
func Compute(tree *quadtree.Tree, node, level int32, ranges []float32, cameraPos mgl32.Vec3, subdivisions int, style Style) ParameterSet {
	n := &tree.Nodes[node]
	size := n.Box.Size()
	half := tree.Size / 2

	ps := ParameterSet{
		UVOffset: mgl32.Vec2{
			(n.Box.Min.X() + half) / tree.Size,
			(n.Box.Min.Z() + half) / tree.Size,
		},
		UVScale: mgl32.Vec2{
			size.X() / tree.Size,
			size.Z() / tree.Size,
		},
		PatchOrigin:  mgl32.Vec2{n.Box.Min.X(), n.Box.Min.Z()},
		PatchSize:    mgl32.Vec2{size.X(), size.Z()},
		DebugColor:   Palette[((n.Level%8)+8)%8],
		RangeCount:   int32(len(ranges)),
		CameraPos:    cameraPos,
		Subdivisions: int32(subdivisions),
		Level:        level,
		Style:        style,
	}
	copy(ps.Ranges[:], ranges)

	return ps
}
