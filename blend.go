package gfx

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/gl"
)

// BlendMode selects how drawn colors combine with the render target.
// Colors are premultiplied by alpha.
type BlendMode uint8

const (
	// BlendNormal is premultiplied source-over.
	BlendNormal BlendMode = iota
	BlendAdd
	BlendMultiply
	BlendScreen
	BlendOverlay
)

// BlendFunc is the four-factor separate blend function for a mode.
type BlendFunc struct {
	SrcRGB, DstRGB     gl.Enum
	SrcAlpha, DstAlpha gl.Enum
}

// Every mode keeps the premultiplied source-over alpha channel.
var premultipliedAlpha = gputypes.BlendComponent{
	SrcFactor: gputypes.BlendFactorOne,
	DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
	Operation: gputypes.BlendOperationAdd,
}

func colorBlend(src, dst gputypes.BlendFactor) gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{SrcFactor: src, DstFactor: dst, Operation: gputypes.BlendOperationAdd},
		Alpha: premultipliedAlpha,
	}
}

var blendStates = [...]gputypes.BlendState{
	BlendNormal:   gputypes.BlendStatePremultiplied(),
	BlendAdd:      colorBlend(gputypes.BlendFactorOne, gputypes.BlendFactorOne),
	BlendMultiply: colorBlend(gputypes.BlendFactorDst, gputypes.BlendFactorZero),
	BlendScreen:   colorBlend(gputypes.BlendFactorOneMinusDst, gputypes.BlendFactorOne),
	BlendOverlay:  colorBlend(gputypes.BlendFactorDst, gputypes.BlendFactorOneMinusSrcAlpha),
}

// State returns m as a gputypes blend state. Unknown modes use
// BlendNormal.
func (m BlendMode) State() gputypes.BlendState {
	if int(m) < len(blendStates) {
		return blendStates[m]
	}
	return blendStates[BlendNormal]
}

// Func returns the GL blend factors for m.
func (m BlendMode) Func() BlendFunc {
	return glBlendFunc(m.State())
}

// String returns the mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "Normal"
	case BlendAdd:
		return "Add"
	case BlendMultiply:
		return "Multiply"
	case BlendScreen:
		return "Screen"
	case BlendOverlay:
		return "Overlay"
	default:
		return fmt.Sprintf("BlendMode(%d)", m)
	}
}
