package gfx

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/gl"
)

// Mesh is immutable indexed geometry uploaded once into static buffers.
// It never batches and never grows.
type Mesh struct {
	ctx      *Context
	format   VertexFormat
	vbo      gl.Buffer
	ibo      gl.Buffer
	vertices int
	indices  int
	released bool
}

// NewMesh uploads vertices and indices into new static buffers. Vertices
// are laid out per format; indices address whole vertices.
func NewMesh(ctx *Context, format VertexFormat, vertices []float32, indices []uint16) (*Mesh, error) {
	stride := format.Stride()
	if stride == 0 || len(vertices)%stride != 0 {
		return nil, fmt.Errorf("%w: %d floats for stride %d", ErrStrideMismatch, len(vertices), stride)
	}
	f := ctx.funcs
	vbo := f.CreateBuffer()
	if !vbo.Valid() {
		return nil, fmt.Errorf("%w: mesh vertex buffer", ErrResourceCreation)
	}
	ibo := f.CreateBuffer()
	if !ibo.Valid() {
		f.DeleteBuffer(vbo)
		return nil, fmt.Errorf("%w: mesh index buffer", ErrResourceCreation)
	}

	m := &Mesh{
		ctx:      ctx,
		format:   format.Clone(),
		vbo:      vbo,
		ibo:      ibo,
		vertices: len(vertices) / stride,
		indices:  len(indices),
	}

	st := ctx.state
	st.ArrayBuffer.Push(vbo)
	f.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.STATIC_DRAW, float32Bytes(vertices))
	st.ArrayBuffer.Pop()

	st.ElementBuffer.Push(ibo)
	f.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*indexSize, gl.STATIC_DRAW, uint16Bytes(indices))
	st.ElementBuffer.Pop()

	ctx.Own(m)
	return m, nil
}

// Draw issues one indexed draw. byteOffset is the offset into the index
// buffer and count the number of indices; a count of zero or less draws
// every index from byteOffset on.
//
// The range is checked against the index buffer before drawing, as the
// batch renderer does: an out-of-range draw is skipped and ErrBufferTooSmall
// returned.
func (m *Mesh) Draw(primitive Primitive, byteOffset, count int) error {
	if m.released {
		return ErrReleased
	}
	first := byteOffset / indexSize
	if count <= 0 {
		count = m.indices - first
	}
	if byteOffset < 0 || byteOffset%indexSize != 0 || first > m.indices || first+count > m.indices {
		err := fmt.Errorf("%w: mesh draw of %d indices at byte %d, buffer holds %d",
			ErrBufferTooSmall, count, byteOffset, m.indices)
		Logger().Warn("gfx: mesh draw skipped", slog.Any("error", err))
		return err
	}
	if count == 0 {
		return nil
	}

	f := m.ctx.funcs
	st := m.ctx.state
	st.ArrayBuffer.Push(m.vbo)
	st.ElementBuffer.Push(m.ibo)
	m.ctx.setVertexFormat(m.format, m.vbo)
	f.DrawElements(primitive.glMode(), count, indexType, byteOffset)
	st.ElementBuffer.Pop()
	st.ArrayBuffer.Pop()
	return nil
}

// Format returns the vertex format of the mesh.
func (m *Mesh) Format() VertexFormat {
	return m.format
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return m.vertices
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return m.indices
}

// IndexFormat returns the index type used by the mesh.
func (m *Mesh) IndexFormat() gputypes.IndexFormat {
	return indexFormat
}

// Release deletes both buffers. Later calls do nothing.
func (m *Mesh) Release() {
	if m.released {
		return
	}
	m.released = true
	m.ctx.forgetBuffer(m.vbo)
	m.ctx.funcs.DeleteBuffer(m.vbo)
	m.ctx.funcs.DeleteBuffer(m.ibo)
}
