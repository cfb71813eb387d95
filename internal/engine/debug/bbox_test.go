package debug

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
)

func TestBBoxWireframeVertices(t *testing.T) {
	box := quadtree.AABB{
		Min: mgl32.Vec3{-10, 0, -10},
		Max: mgl32.Vec3{10, 5, 10},
	}

	verts := BBoxWireframeVertices(box)
	if len(verts) != BBoxWireframeVertexCount*3 {
		t.Fatalf("expected %d floats, got %d", BBoxWireframeVertexCount*3, len(verts))
	}

	// Every vertex must sit on a box corner.
	for i := 0; i < len(verts); i += 3 {
		x, y, z := verts[i], verts[i+1], verts[i+2]
		if (x != -10 && x != 10) || (y != 0 && y != 5) || (z != -10 && z != 10) {
			t.Errorf("vertex %d (%g, %g, %g) is not a box corner", i/3, x, y, z)
		}
	}
}

func TestAppendBBoxWireframeBatches(t *testing.T) {
	a := quadtree.AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	b := quadtree.AABB{Min: mgl32.Vec3{2, 2, 2}, Max: mgl32.Vec3{3, 3, 3}}

	buf := AppendBBoxWireframe(nil, a)
	buf = AppendBBoxWireframe(buf, b)

	if len(buf) != 2*BBoxWireframeVertexCount*3 {
		t.Fatalf("expected two batched boxes, got %d floats", len(buf))
	}
	if buf[0] != 0 || buf[len(buf)-1] != 3 {
		t.Errorf("batched buffer has wrong endpoints: first %g, last %g", buf[0], buf[len(buf)-1])
	}
}
