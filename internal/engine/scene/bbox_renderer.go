package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/bpodwinski/gocdlod/internal/engine/scene/shaders"
	"github.com/bpodwinski/gocdlod/internal/engine/shader"
)

// bboxRenderer draws batched wireframe boxes as GL_LINES. The vertex
// buffer is orphaned and refilled each frame.
type bboxRenderer struct {
	program  *shader.Program
	locColor int32
	locVP    int32

	vao      uint32
	vbo      uint32
	capacity int
}

func newBboxRenderer() (*bboxRenderer, error) {
	program, err := shader.NewProgram(shaders.BboxVertexShader, shaders.BboxFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bbox shader: %w", err)
	}

	br := &bboxRenderer{
		program:  program,
		locVP:    program.Uniform("uViewProj"),
		locColor: program.Uniform("uColor"),
	}

	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)

	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	return br, nil
}

// Draw renders verts ([x y z] per vertex, two vertices per line) in a
// single color.
func (br *bboxRenderer) Draw(viewProj mgl32.Mat4, verts []float32, color [3]float32) {
	if len(verts) == 0 {
		return
	}

	br.program.Use()
	gl.UniformMatrix4fv(br.locVP, 1, false, &viewProj[0])
	gl.Uniform3f(br.locColor, color[0], color[1], color[2])

	gl.BindVertexArray(br.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)

	size := len(verts) * 4
	if size > br.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		br.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&verts[0]))
	}

	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))

	gl.BindVertexArray(0)
}

func (br *bboxRenderer) Destroy() {
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	if br.program != nil {
		br.program.Delete()
		br.program = nil
	}
}
