// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gl defines the OpenGL vocabulary used by gfx: enum values, typed
// object handles, and the Functions interface through which every GL entry
// point is reached.
//
// Keeping the entry points behind an interface lets the renderer run against
// a real driver (package gl/opengl) or against an in-memory implementation in
// tests.
package gl

type (
	Attrib uint
	Enum   uint
)

const (
	ARRAY_BUFFER                  = 0x8892
	BLEND                         = 0xbe2
	BUFFER_SIZE                   = 0x8764
	CLAMP_TO_EDGE                 = 0x812f
	COLOR_ATTACHMENT0             = 0x8ce0
	COLOR_BUFFER_BIT              = 0x4000
	COMPILE_STATUS                = 0x8b81
	CONSTANT_COLOR                = 0x8001
	DEPTH24_STENCIL8              = 0x88f0
	DEPTH_BUFFER_BIT              = 0x100
	DEPTH_COMPONENT16             = 0x81a5
	DEPTH_COMPONENT24             = 0x81a6
	DEPTH_COMPONENT32F            = 0x8cac
	DEPTH_STENCIL_ATTACHMENT      = 0x821a
	DST_ALPHA                     = 0x304
	DST_COLOR                     = 0x306
	DYNAMIC_DRAW                  = 0x88e8
	ELEMENT_ARRAY_BUFFER          = 0x8893
	FALSE                         = 0
	FLOAT                         = 0x1406
	FRAGMENT_SHADER               = 0x8b30
	FRAMEBUFFER                   = 0x8d40
	FRAMEBUFFER_COMPLETE          = 0x8cd5
	FRAMEBUFFER_INCOMPLETE_ATTACH = 0x8cd6
	FRAMEBUFFER_MISSING_ATTACH    = 0x8cd7
	FRAMEBUFFER_UNSUPPORTED       = 0x8cdd
	INVALID_ENUM                  = 0x500
	INVALID_FRAMEBUFFER_OPERATION = 0x506
	INVALID_OPERATION             = 0x502
	INVALID_VALUE                 = 0x501
	LINEAR                        = 0x2601
	LINES                         = 0x1
	LINE_STRIP                    = 0x3
	LINK_STATUS                   = 0x8b82
	MAX_VERTEX_ATTRIBS            = 0x8869
	MIRRORED_REPEAT               = 0x8370
	NEAREST                       = 0x2600
	NO_ERROR                      = 0x0
	ONE                           = 0x1
	ONE_MINUS_CONSTANT_COLOR      = 0x8002
	ONE_MINUS_DST_ALPHA           = 0x305
	ONE_MINUS_DST_COLOR           = 0x307
	ONE_MINUS_SRC_ALPHA           = 0x303
	ONE_MINUS_SRC_COLOR           = 0x301
	OUT_OF_MEMORY                 = 0x505
	PACK_ALIGNMENT                = 0xd05
	POINTS                        = 0x0
	RENDERBUFFER                  = 0x8d41
	RENDERER                      = 0x1f01
	REPEAT                        = 0x2901
	RGBA                          = 0x1908
	RGBA8                         = 0x8058
	SRC_ALPHA                     = 0x302
	SRC_ALPHA_SATURATE            = 0x308
	SRC_COLOR                     = 0x300
	SRGB8_ALPHA8                  = 0x8c43
	STATIC_DRAW                   = 0x88e4
	STENCIL_BUFFER_BIT            = 0x400
	TEXTURE0                      = 0x84c0
	TEXTURE_2D                    = 0xde1
	TEXTURE_MAG_FILTER            = 0x2800
	TEXTURE_MIN_FILTER            = 0x2801
	TEXTURE_WRAP_S                = 0x2802
	TEXTURE_WRAP_T                = 0x2803
	TRIANGLES                     = 0x4
	TRIANGLE_STRIP                = 0x5
	TRUE                          = 1
	UNPACK_ALIGNMENT              = 0xcf5
	UNSIGNED_BYTE                 = 0x1401
	UNSIGNED_INT                  = 0x1405
	UNSIGNED_SHORT                = 0x1403
	VENDOR                        = 0x1f00
	VERSION                       = 0x1f02
	VERTEX_SHADER                 = 0x8b31
	ZERO                          = 0x0
)

type (
	Buffer       struct{ V uint }
	Framebuffer  struct{ V uint }
	Program      struct{ V uint }
	Renderbuffer struct{ V uint }
	Shader       struct{ V uint }
	Texture      struct{ V uint }
	Uniform      struct{ V int }
)

func (b Buffer) Valid() bool {
	return b.V != 0
}

func (f Framebuffer) Valid() bool {
	return f.V != 0
}

func (p Program) Valid() bool {
	return p.V != 0
}

func (r Renderbuffer) Valid() bool {
	return r.V != 0
}

func (s Shader) Valid() bool {
	return s.V != 0
}

func (t Texture) Valid() bool {
	return t.V != 0
}

func (u Uniform) Valid() bool {
	return u.V != -1
}

// ErrorString returns the symbolic name of a GetError result.
func ErrorString(e Enum) string {
	switch e {
	case NO_ERROR:
		return "NO_ERROR"
	case INVALID_ENUM:
		return "INVALID_ENUM"
	case INVALID_VALUE:
		return "INVALID_VALUE"
	case INVALID_OPERATION:
		return "INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "UNKNOWN_ERROR"
	}
}

// FramebufferStatusString returns the symbolic name of a
// CheckFramebufferStatus result.
func FramebufferStatusString(s Enum) string {
	switch s {
	case FRAMEBUFFER_COMPLETE:
		return "FRAMEBUFFER_COMPLETE"
	case FRAMEBUFFER_INCOMPLETE_ATTACH:
		return "FRAMEBUFFER_INCOMPLETE_ATTACHMENT"
	case FRAMEBUFFER_MISSING_ATTACH:
		return "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT"
	case FRAMEBUFFER_UNSUPPORTED:
		return "FRAMEBUFFER_UNSUPPORTED"
	default:
		return "FRAMEBUFFER_STATUS_UNKNOWN"
	}
}
