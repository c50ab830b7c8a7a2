package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ComponentsPerVertex is the number of floats in one position.
const ComponentsPerVertex = 3

// Mesh owns a vertex array with one position attribute and an optional
// index buffer.
type Mesh struct {
	vao uint32
	vbo uint32
	ibo uint32

	vertexCount int32
	indexCount  int32

	// vertex array that was bound when Bind was called
	prev uint32
}

// ValidateGeometry checks that vertices hold whole positions and that every
// index refers to an existing vertex.
func ValidateGeometry(vertices []float32, indices []uint32) error {
	if len(vertices) == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidGeometry)
	}
	if len(vertices)%ComponentsPerVertex != 0 {
		return fmt.Errorf("%w: %d floats is not a multiple of %d", ErrInvalidGeometry, len(vertices), ComponentsPerVertex)
	}
	if len(indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices do not form whole triangles", ErrInvalidGeometry, len(indices))
	}
	n := uint32(len(vertices) / ComponentsPerVertex)
	for i, idx := range indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range for %d vertices", ErrInvalidGeometry, idx, i, n)
		}
	}
	return nil
}

// NewMesh uploads vertices (x,y,z triples) and, if non-empty, indices.
func NewMesh(vertices []float32, indices []uint32) (*Mesh, error) {
	if err := ValidateGeometry(vertices, indices); err != nil {
		return nil, err
	}

	m := &Mesh{
		vertexCount: int32(len(vertices) / ComponentsPerVertex),
		indexCount:  int32(len(indices)),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	if len(indices) > 0 {
		gl.GenBuffers(1, &m.ibo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ibo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, ComponentsPerVertex, gl.FLOAT, false, 0, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	// the element buffer binding is VAO state and stays attached
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m, nil
}

// Bind makes the mesh's vertex array current and remembers the one it
// replaced.
func (m *Mesh) Bind() {
	var cur int32
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &cur)
	m.prev = uint32(cur)
	gl.BindVertexArray(m.vao)
}

// Unbind restores the vertex array that was bound before Bind.
func (m *Mesh) Unbind() {
	gl.BindVertexArray(m.prev)
	m.prev = 0
}

// Draw issues one draw call for the whole mesh. The mesh must be bound.
func (m *Mesh) Draw() {
	if m.Indexed() {
		gl.DrawElements(gl.TRIANGLES, m.Count(), gl.UNSIGNED_INT, gl.PtrOffset(0))
		return
	}
	gl.DrawArrays(gl.TRIANGLES, 0, m.Count())
}

// Indexed reports whether Draw uses the index buffer.
func (m *Mesh) Indexed() bool {
	return m.indexCount > 0
}

// Count is the number of vertices a draw call references.
func (m *Mesh) Count() int32 {
	if m.indexCount > 0 {
		return m.indexCount
	}
	return m.vertexCount
}

// Delete releases the GL buffers and vertex array.
func (m *Mesh) Delete() {
	if m.ibo != 0 {
		gl.DeleteBuffers(1, &m.ibo)
		m.ibo = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
}
