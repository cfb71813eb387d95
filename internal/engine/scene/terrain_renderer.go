// Package scene renders the terrain with a single shared patch mesh.
// Every selected chunk is drawn from the same vertex buffer; only a
// small per-chunk parameter block changes between draws.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/chunk"
	"github.com/bpodwinski/gocdlod/internal/engine/debug"
	"github.com/bpodwinski/gocdlod/internal/engine/heightfield"
	"github.com/bpodwinski/gocdlod/internal/engine/quadtree"
	"github.com/bpodwinski/gocdlod/internal/engine/scene/shaders"
	"github.com/bpodwinski/gocdlod/internal/engine/shader"
	"github.com/bpodwinski/gocdlod/internal/engine/terrain"
	"github.com/bpodwinski/gocdlod/internal/engine/uniform"
)

// patchParamsSize is the std140 size of the PatchParams uniform block:
// four vec4 headers plus two vec4 of LOD ranges.
const patchParamsSize = 6 * 16

// patchParamsBinding is the uniform buffer binding point for PatchParams.
const patchParamsBinding = 0

// TerrainRenderer draws CDLOD terrain patches. It also implements
// chunk.PatchFactory; patch instances are lightweight records because
// all chunks share the renderer's mesh and parameter buffer.
type TerrainRenderer struct {
	program *shader.Program

	locViewProj      int32
	locCameraPos     int32
	locTerrainHeight int32
	locHeightmap     int32
	locLightDir      int32

	// Shared patch grid mesh
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	// Per-chunk parameter buffer
	ubo uint32

	// Heightfield texture (R32F)
	heightTex uint32

	bbox *bboxRenderer

	lightDir mgl32.Vec3
	patches  int

	// Scratch buffer for batched bounding box lines
	bboxVerts []float32
}

// patchInstance is the per-chunk record handed to the lifecycle manager.
// It owns no GPU resources; disposal only updates the renderer's count.
type patchInstance struct {
	r    *TerrainRenderer
	desc chunk.PatchDesc
}

func (p *patchInstance) Dispose() {
	p.r.patches--
}

// NewTerrainRenderer compiles the terrain pipeline, uploads the shared
// patch mesh for the given grid resolution, and uploads the heightfield.
func NewTerrainRenderer(subdivisions int, field *heightfield.Grid) (*TerrainRenderer, error) {
	if subdivisions < 1 {
		return nil, fmt.Errorf("terrain renderer: subdivisions must be >= 1, got %d", subdivisions)
	}

	tr := &TerrainRenderer{
		lightDir: mgl32.Vec3{0.4, 0.8, 0.3},
	}

	program, err := shader.NewProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = program.Uniform("uViewProj")
	tr.locCameraPos = program.Uniform("uCameraPos")
	tr.locTerrainHeight = program.Uniform("uTerrainHeight")
	tr.locHeightmap = program.Uniform("uHeightmap")
	tr.locLightDir = program.Uniform("uLightDir")

	tr.uploadPatchMesh(subdivisions)
	tr.createParamBuffer()
	tr.uploadHeightfield(field)

	bbox, err := newBboxRenderer()
	if err != nil {
		tr.Destroy()
		return nil, err
	}
	tr.bbox = bbox

	return tr, nil
}

// CreatePatch satisfies chunk.PatchFactory.
func (tr *TerrainRenderer) CreatePatch(desc chunk.PatchDesc) (chunk.Instance, error) {
	tr.patches++
	return &patchInstance{r: tr, desc: desc}, nil
}

// PatchCount returns the number of live patch instances.
func (tr *TerrainRenderer) PatchCount() int {
	return tr.patches
}

// SetLightDir sets the directional light used by the fragment shader.
func (tr *TerrainRenderer) SetLightDir(dir mgl32.Vec3) {
	tr.lightDir = dir
}

// uploadPatchMesh builds the shared (n+1)x(n+1) grid of patch-local UV
// coordinates in [0,1]^2 with n*n*2 triangles.
func (tr *TerrainRenderer) uploadPatchMesh(subdivisions int) {
	n := subdivisions
	verts := make([]float32, 0, (n+1)*(n+1)*2)
	inv := 1 / float32(n)
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			verts = append(verts, float32(x)*inv, float32(y)*inv)
		}
	}

	indices := make([]uint32, 0, n*n*6)
	stride := uint32(n + 1)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := uint32(y)*stride + uint32(x)
			indices = append(indices,
				i, i+1, i+stride,
				i+1, i+stride+1, i+stride,
			)
		}
	}
	tr.indexCount = int32(len(indices))

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)

	// Patch UV (location 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
}

func (tr *TerrainRenderer) createParamBuffer() {
	gl.GenBuffers(1, &tr.ubo)
	gl.BindBuffer(gl.UNIFORM_BUFFER, tr.ubo)
	gl.BufferData(gl.UNIFORM_BUFFER, patchParamsSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)

	blockIndex := gl.GetUniformBlockIndex(tr.program.ID, gl.Str("PatchParams\x00"))
	gl.UniformBlockBinding(tr.program.ID, blockIndex, patchParamsBinding)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, patchParamsBinding, tr.ubo)
}

func (tr *TerrainRenderer) uploadHeightfield(field *heightfield.Grid) {
	gl.GenTextures(1, &tr.heightTex)
	gl.BindTexture(gl.TEXTURE_2D, tr.heightTex)

	size := int32(field.Size())
	data := field.Data()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R32F, size, size,
		0, gl.RED, gl.FLOAT, unsafe.Pointer(&data[0]))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// packParams lays out one parameter set in the std140 order of the
// PatchParams block.
func packParams(ps uniform.ParameterSet, out *[patchParamsSize / 4]float32) {
	out[0] = ps.UVOffset.X()
	out[1] = ps.UVOffset.Y()
	out[2] = ps.UVScale.X()
	out[3] = ps.UVScale.Y()

	out[4] = ps.PatchOrigin.X()
	out[5] = ps.PatchOrigin.Y()
	out[6] = ps.PatchSize.X()
	out[7] = ps.PatchSize.Y()

	out[8] = ps.DebugColor[0]
	out[9] = ps.DebugColor[1]
	out[10] = ps.DebugColor[2]
	if ps.Style.ShowChunk {
		out[11] = ps.Style.MixFactor
	} else {
		out[11] = 0
	}

	out[12] = float32(ps.Level)
	out[13] = float32(ps.Subdivisions)
	out[14] = float32(ps.RangeCount)
	out[15] = 0

	for i := 0; i < len(ps.Ranges); i++ {
		out[16+i] = ps.Ranges[i]
	}
}

// Draw renders every attached chunk of t, then its bounding boxes when
// the style asks for them.
func (tr *TerrainRenderer) Draw(t *terrain.Terrain, viewProj mgl32.Mat4) {
	style := t.Style()

	tr.program.Use()
	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform1f(tr.locTerrainHeight, t.Config().Height)
	gl.Uniform3f(tr.locLightDir, tr.lightDir.X(), tr.lightDir.Y(), tr.lightDir.Z())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.heightTex)
	gl.Uniform1i(tr.locHeightmap, 0)

	if style.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	gl.BindVertexArray(tr.vao)
	gl.BindBuffer(gl.UNIFORM_BUFFER, tr.ubo)

	var block [patchParamsSize / 4]float32
	cameraSet := false
	tr.bboxVerts = tr.bboxVerts[:0]

	t.EachChunk(func(inst chunk.Instance, ps uniform.ParameterSet) {
		if !cameraSet {
			gl.Uniform3f(tr.locCameraPos, ps.CameraPos.X(), ps.CameraPos.Y(), ps.CameraPos.Z())
			cameraSet = true
		}

		packParams(ps, &block)
		gl.BufferSubData(gl.UNIFORM_BUFFER, 0, patchParamsSize, unsafe.Pointer(&block[0]))
		gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)

		if style.ShowBoundingBox {
			// Chunk boxes span the full vertical extent.
			box := quadtree.AABB{
				Min: mgl32.Vec3{ps.PatchOrigin.X(), 0, ps.PatchOrigin.Y()},
				Max: mgl32.Vec3{
					ps.PatchOrigin.X() + ps.PatchSize.X(),
					t.Config().Height,
					ps.PatchOrigin.Y() + ps.PatchSize.Y(),
				},
			}
			tr.bboxVerts = debug.AppendBBoxWireframe(tr.bboxVerts, box)
		}
	})

	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindVertexArray(0)

	if style.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	if style.ShowBoundingBox && len(tr.bboxVerts) > 0 {
		tr.bbox.Draw(viewProj, tr.bboxVerts, [3]float32{1, 0.85, 0.1})
	}
}

// Destroy releases all GPU resources.
func (tr *TerrainRenderer) Destroy() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	if tr.ubo != 0 {
		gl.DeleteBuffers(1, &tr.ubo)
		tr.ubo = 0
	}
	if tr.heightTex != 0 {
		gl.DeleteTextures(1, &tr.heightTex)
		tr.heightTex = 0
	}
	if tr.bbox != nil {
		tr.bbox.Destroy()
		tr.bbox = nil
	}
	if tr.program != nil {
		tr.program.Delete()
		tr.program = nil
	}
}
