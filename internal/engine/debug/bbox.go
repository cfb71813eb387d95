// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BBoxWireframeVertices(box quadtree.AABB) []float32 {
	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	return AppendBBoxWireframe(out, box)
}

// AppendBBoxWireframe appends the 24 wireframe vertices of box to dst.
// The renderer batches one call per selected chunk into a single line
// buffer, so dst is reused across frames.
func AppendBBoxWireframe(dst []float32, box quadtree.AABB) []float32 {
	minX, minY, minZ := box.Min.X(), box.Min.Y(), box.Min.Z()
	maxX, maxY, maxZ := box.Max.X(), box.Max.Y(), box.Max.Z()

	return append(dst,
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	)
}
