package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	geometry "github.com/richinsley/hellogl/geometry"
)

const floatSize = 4

// MeshBuffers is a mesh resident on the GPU: a VAO with attribute 0 bound to
// the position buffer and, for indexed meshes, an element buffer.
type MeshBuffers struct {
	vao   uint32
	vbo   uint32
	ibo   uint32
	count int32
}

// UploadMesh copies m into static GPU buffers.
func UploadMesh(m *geometry.Mesh) (*MeshBuffers, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot upload mesh %s: %w", m.Name, err)
	}
	mb := &MeshBuffers{count: int32(m.DrawCount())}

	gl.GenVertexArrays(1, &mb.vao)
	gl.BindVertexArray(mb.vao)

	gl.GenBuffers(1, &mb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*floatSize, gl.Ptr(m.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, int32(m.Components), gl.FLOAT, false, int32(m.Components*floatSize), gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if m.Indexed() {
		// the element binding is VAO state, so it stays bound
		gl.GenBuffers(1, &mb.ibo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ibo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return mb, nil
}

func (mb *MeshBuffers) Bind() {
	gl.BindVertexArray(mb.vao)
}

// Draw issues a triangle-list draw, indexed when the mesh has indices.
func (mb *MeshBuffers) Draw() {
	gl.BindVertexArray(mb.vao)
	if mb.ibo != 0 {
		gl.DrawElements(gl.TRIANGLES, mb.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, mb.count)
	}
}

// Delete releases the buffers and the VAO. Safe to call more than once.
func (mb *MeshBuffers) Delete() {
	if mb == nil {
		return
	}
	if mb.ibo != 0 {
		gl.DeleteBuffers(1, &mb.ibo)
		mb.ibo = 0
	}
	if mb.vbo != 0 {
		gl.DeleteBuffers(1, &mb.vbo)
		mb.vbo = 0
	}
	if mb.vao != 0 {
		gl.DeleteVertexArrays(1, &mb.vao)
		mb.vao = 0
	}
}
