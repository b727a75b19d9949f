package gfx

import (
	"fmt"
	"slices"

	"github.com/brunoga/deep"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/gl"
)

// Primitive is the topology used to assemble indexed vertices.
// The zero value is Triangles.
type Primitive uint8

const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

func (p Primitive) glMode() gl.Enum {
	return glTopology(p.ToWGPU())
}

// ToWGPU converts to the gputypes primitive topology.
func (p Primitive) ToWGPU() gputypes.PrimitiveTopology {
	switch p {
	case TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	case Lines:
		return gputypes.PrimitiveTopologyLineList
	case LineStrip:
		return gputypes.PrimitiveTopologyLineStrip
	case Points:
		return gputypes.PrimitiveTopologyPointList
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// String returns the primitive name.
func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "Triangles"
	case TriangleStrip:
		return "TriangleStrip"
	case Lines:
		return "Lines"
	case LineStrip:
		return "LineStrip"
	case Points:
		return "Points"
	default:
		return fmt.Sprintf("Primitive(%d)", p)
	}
}

// Shader is a compiled GPU program. Bind and Unbind must go through the
// context's program stack. Send uploads uniform values to the bound program.
//
// Materials compare shaders by identity, so implementations should be
// pointer types.
type Shader interface {
	Bind()
	Unbind()
	Send(u Uniform) error
}

// Uniform maps uniform names to values. Supported value types are float32,
// float64, int, int32, bool, mgl32.Vec2, mgl32.Vec3, mgl32.Vec4, mgl32.Mat3,
// mgl32.Mat4 and []float32.
//
// Uniforms are compared by value: two maps holding equal values under the
// same names are equal regardless of identity.
type Uniform map[string]any

// Equal reports whether u and o hold the same names with equal values.
// A nil Uniform equals an empty one. Values of unsupported types never
// compare equal.
func (u Uniform) Equal(o Uniform) bool {
	if len(u) != len(o) {
		return false
	}
	for k, av := range u {
		bv, ok := o[k]
		if !ok || !uniformValueEqual(av, bv) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of u, so later changes to the caller's map or
// slices do not leak into a queued batch.
func (u Uniform) Clone() Uniform {
	if u == nil {
		return nil
	}
	return deep.MustCopy(u)
}

func uniformValueEqual(a, b any) bool {
	switch av := a.(type) {
	case float32:
		bv, ok := b.(float32)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int32:
		bv, ok := b.(int32)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case mgl32.Vec2:
		bv, ok := b.(mgl32.Vec2)
		return ok && av == bv
	case mgl32.Vec3:
		bv, ok := b.(mgl32.Vec3)
		return ok && av == bv
	case mgl32.Vec4:
		bv, ok := b.(mgl32.Vec4)
		return ok && av == bv
	case mgl32.Mat3:
		bv, ok := b.(mgl32.Mat3)
		return ok && av == bv
	case mgl32.Mat4:
		bv, ok := b.(mgl32.Mat4)
		return ok && av == bv
	case []float32:
		bv, ok := b.([]float32)
		return ok && slices.Equal(av, bv)
	default:
		return false
	}
}

// Material is everything besides geometry that a draw depends on. Two
// submissions are drawn in one batch only if their materials are Equal.
type Material struct {
	Primitive Primitive
	Texture   *Texture
	Shader    Shader
	Uniform   Uniform
	Blend     BlendMode

	// Fixed geometry ignores the camera and is drawn in viewport space.
	Fixed bool
}

// Equal compares texture and shader by identity and everything else by
// value.
func (m Material) Equal(o Material) bool {
	return m.Primitive == o.Primitive &&
		m.Texture == o.Texture &&
		m.Shader == o.Shader &&
		m.Blend == o.Blend &&
		m.Fixed == o.Fixed &&
		m.Uniform.Equal(o.Uniform)
}

// snapshot returns m with its uniform deep-copied.
func (m Material) snapshot() Material {
	m.Uniform = m.Uniform.Clone()
	return m
}
