package gfx

import (
	"slices"
	"strconv"
	"strings"
)

// VertexAttrib is one attribute of a vertex: a name matching the shader
// input and a component count.
type VertexAttrib struct {
	Name string
	Size int
}

// VertexFormat is the ordered list of attributes making up one vertex.
// Vertices are tightly packed float32 values in format order.
type VertexFormat []VertexAttrib

// DefaultFormat is the position/texcoord/color layout used for 2D sprites.
var DefaultFormat = VertexFormat{
	{Name: "a_pos", Size: 2},
	{Name: "a_uv", Size: 2},
	{Name: "a_color", Size: 4},
}

// Stride returns the number of float32 components per vertex.
func (f VertexFormat) Stride() int {
	n := 0
	for _, a := range f {
		n += a.Size
	}
	return n
}

// Equal reports whether f and o describe the same layout.
func (f VertexFormat) Equal(o VertexFormat) bool {
	return slices.Equal(f, o)
}

// Clone returns a copy of f that does not share storage with it.
func (f VertexFormat) Clone() VertexFormat {
	return slices.Clone(f)
}

// String returns a compact description such as "a_pos:2,a_uv:2".
func (f VertexFormat) String() string {
	var sb strings.Builder
	for i, a := range f {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.Name)
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(a.Size))
	}
	return sb.String()
}
