package gfx

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/gl"
)

// Resources describe themselves in gputypes terms. The functions below are
// the only place those descriptions are turned into GL parameters.

// indexFormat is the element type of every index buffer gfx draws from.
const indexFormat = gputypes.IndexFormatUint16

// indexType and indexSize are the GL type and byte width of indexFormat.
var indexType, indexSize = glIndexType(indexFormat)

func glIndexType(f gputypes.IndexFormat) (gl.Enum, int) {
	if f == gputypes.IndexFormatUint32 {
		return gl.UNSIGNED_INT, 4
	}
	return gl.UNSIGNED_SHORT, 2
}

func glBlendFactor(f gputypes.BlendFactor) gl.Enum {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	default:
		return gl.ONE
	}
}

// glBlendFunc converts the factors of s. The blend equation is always add.
func glBlendFunc(s gputypes.BlendState) BlendFunc {
	return BlendFunc{
		SrcRGB:   glBlendFactor(s.Color.SrcFactor),
		DstRGB:   glBlendFactor(s.Color.DstFactor),
		SrcAlpha: glBlendFactor(s.Alpha.SrcFactor),
		DstAlpha: glBlendFactor(s.Alpha.DstFactor),
	}
}

func glTopology(t gputypes.PrimitiveTopology) gl.Enum {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

func glFilter(m gputypes.FilterMode) int {
	if m == gputypes.FilterModeLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glAddressMode(m gputypes.AddressMode) int {
	switch m {
	case gputypes.AddressModeRepeat:
		return gl.REPEAT
	case gputypes.AddressModeMirrorRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}

// pixelFormat is the GL description of a color format: the internal
// storage format plus the client format and type used for transfers.
type pixelFormat struct {
	Internal gl.Enum
	Format   gl.Enum
	Type     gl.Enum
}

// glPixelFormat maps a color format. Formats gfx does not allocate fall
// back to RGBA8.
func glPixelFormat(f gputypes.TextureFormat) pixelFormat {
	if f == gputypes.TextureFormatRGBA8UnormSrgb {
		return pixelFormat{gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE}
	}
	return pixelFormat{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}
}

func glRenderbufferFormat(f gputypes.TextureFormat) gl.Enum {
	switch f {
	case gputypes.TextureFormatDepth16Unorm:
		return gl.DEPTH_COMPONENT16
	case gputypes.TextureFormatDepth24Plus:
		return gl.DEPTH_COMPONENT24
	case gputypes.TextureFormatDepth32Float:
		return gl.DEPTH_COMPONENT32F
	default:
		return gl.DEPTH24_STENCIL8
	}
}
