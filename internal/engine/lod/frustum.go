package lod

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a clip plane in ax+by+cz+d = 0 form with a unit normal.
// Points with a positive signed distance are on the inside.
type Plane struct {
	A, B, C, D float32
}

// Frustum holds the six clip planes of a camera, in the order left,
// right, bottom, top, near, far.
type Frustum [6]Plane

// ExtractFrustum builds the six clip planes from a combined
// projection*view matrix (column-major, as mgl32 stores it).
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	m00, m01, m02, m03 := viewProj[0], viewProj[4], viewProj[8], viewProj[12]
	m10, m11, m12, m13 := viewProj[1], viewProj[5], viewProj[9], viewProj[13]
	m20, m21, m22, m23 := viewProj[2], viewProj[6], viewProj[10], viewProj[14]
	m30, m31, m32, m33 := viewProj[3], viewProj[7], viewProj[11], viewProj[15]

	return Frustum{
		normalize(Plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}), // left
		normalize(Plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}), // right
		normalize(Plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}), // bottom
		normalize(Plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}), // top
		normalize(Plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}), // near
		normalize(Plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}), // far
	}
}

func normalize(p Plane) Plane {
	l := float32(gomath.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if l == 0 {
		return p
	}
	return Plane{p.A / l, p.B / l, p.C / l, p.D / l}
}

// BoxVisible reports whether an AABB intersects the frustum. For each
// plane the box's positive vertex (the corner farthest along the plane
// normal) is tested; if it lies behind any plane the whole box is
// outside.
func (f Frustum) BoxVisible(min, max mgl32.Vec3) bool {
	for i := 0; i < 6; i++ {
		p := f[i]

		px := max.X()
		if p.A < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.B < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.C < 0 {
			pz = min.Z()
		}

		if p.A*px+p.B*py+p.C*pz+p.D < 0 {
			return false
		}
	}
	return true
}
