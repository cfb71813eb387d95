// Package morph implements the per-vertex displacement that blends
// geometry between adjacent LOD levels, eliminating cracks where a fine
// patch borders a coarser neighbor. Displace is the CPU reference for
// the formula; the vertex shader in scene/shaders evaluates the same
// steps so both venues agree exactly.
package morph

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// rangeEpsilon guards the morph-factor division against a degenerate
// band. A correctly built range table is strictly increasing, so this
// only matters under misconfiguration.
const rangeEpsilon = 1e-6

// Factor returns the morph blend weight for a vertex at distance dist
// inside the band [low, high). The transition occupies a 30%-wide slice
// of the band: t stays 0 through the first 30%, rises linearly to 1 at
// 60%, and holds 1 up to the coarser boundary.
func Factor(dist, low, high float32) float32 {
	span := high - low
	if span < rangeEpsilon {
		return 0
	}
	t := ((dist-low)/span)/0.3 - 1.0
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Params carries the per-chunk inputs of the morph formula. They mirror
// the parameter set the renderer binds per instance.
type Params struct {
	GridSize      int // patch subdivisions per side
	Level         int // LOD band the chunk was selected at
	Ranges        []float32
	TerrainHeight float32

	// UV mapping from patch-local coordinates into terrain texture space.
	UVOffset mgl32.Vec2
	UVScale  mgl32.Vec2

	// World transform of the patch: XZ = PatchOrigin + uv*PatchSize.
	PatchOrigin mgl32.Vec2
	PatchSize   mgl32.Vec2

	CameraPos mgl32.Vec3
}

// Vertex is the displaced result for one patch vertex.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
}

// Displace evaluates the morph formula at patch-local (u, v) in [0,1]^2.
// sample returns the normalized heightfield value in [0,1] at terrain
// texture coordinates.
func Displace(u, v float32, p Params, sample func(u, v float32) float32) Vertex {
	uvFine := mgl32.Vec2{
		u*p.UVScale.X() + p.UVOffset.X(),
		v*p.UVScale.Y() + p.UVOffset.Y(),
	}

	// Snap to the vertex grid one LOD level coarser (half resolution).
	halfGrid := float32(p.GridSize) / 2
	fracU := fract(u*halfGrid) / halfGrid
	fracV := fract(v*halfGrid) / halfGrid
	uvCoarse := mgl32.Vec2{
		(u-fracU)*p.UVScale.X() + p.UVOffset.X(),
		(v-fracV)*p.UVScale.Y() + p.UVOffset.Y(),
	}

	fineHeight := sample(uvFine.X(), uvFine.Y()) * p.TerrainHeight
	coarseHeight := sample(uvCoarse.X(), uvCoarse.Y()) * p.TerrainHeight

	world := mgl32.Vec3{
		p.PatchOrigin.X() + u*p.PatchSize.X(),
		fineHeight,
		p.PatchOrigin.Y() + v*p.PatchSize.Y(),
	}
	dist := world.Sub(p.CameraPos).Len()

	var low float32
	if p.Level > 0 {
		low = p.Ranges[p.Level-1]
	}
	high := p.Ranges[p.Level]
	t := Factor(dist, low, high)

	// Shift toward the coarser grid position proportionally to t:
	// uv - frac*t interpolates between the fine and snapped grids.
	mu := u - fracU*t
	mv := v - fracV*t

	return Vertex{
		Position: mgl32.Vec3{
			p.PatchOrigin.X() + mu*p.PatchSize.X(),
			lerp(fineHeight, coarseHeight, t),
			p.PatchOrigin.Y() + mv*p.PatchSize.Y(),
		},
		UV: mgl32.Vec2{
			lerp(uvFine.X(), uvCoarse.X(), t),
			lerp(uvFine.Y(), uvCoarse.Y(), t),
		},
	}
}

func fract(x float32) float32 {
	return x - float32(gomath.Floor(float64(x)))
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
