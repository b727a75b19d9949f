package gfx

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gfx/gl"
)

var (
	// ErrResourceCreation is returned by constructors when the driver fails
	// to allocate an object handle. No partially initialized value is
	// returned alongside it.
	ErrResourceCreation = errors.New("gfx: failed to create GPU resource")

	// ErrReleased is returned when operating on a resource after Release.
	ErrReleased = errors.New("gfx: resource has been released")

	// ErrInvalidDimensions is returned for negative sizes or empty images
	// where storage must be allocated.
	ErrInvalidDimensions = errors.New("gfx: invalid dimensions")

	// ErrStrideMismatch is returned when a vertex slice is not a whole
	// number of vertices for the active format.
	ErrStrideMismatch = errors.New("gfx: vertex data is not a multiple of the format stride")

	// ErrBatchOverflow is returned when a single submission cannot fit in
	// an empty batch.
	ErrBatchOverflow = errors.New("gfx: submission exceeds batch capacity")

	// ErrIndexOverflow is returned when rebased indices no longer fit in
	// 16 bits.
	ErrIndexOverflow = errors.New("gfx: index exceeds 16-bit range")

	// ErrBufferTooSmall is returned when a pending draw would read past the
	// end of its GPU buffers. The draw is skipped.
	ErrBufferTooSmall = errors.New("gfx: destination buffer too small for draw")

	// ErrFramebufferIncomplete is returned when a framebuffer fails its
	// completeness check after attachment.
	ErrFramebufferIncomplete = errors.New("gfx: framebuffer incomplete")

	// ErrGL is the sentinel wrapped by DrawError when the driver reports an
	// error after a draw.
	ErrGL = errors.New("gfx: GL error")

	// ErrShaderCompile is returned when a shader stage fails to compile.
	ErrShaderCompile = errors.New("gfx: shader compilation failed")

	// ErrProgramLink is returned when a program fails to link.
	ErrProgramLink = errors.New("gfx: program link failed")

	// ErrUnsupportedUniform is returned by Program.Send for uniform values
	// of a type it cannot upload.
	ErrUnsupportedUniform = errors.New("gfx: unsupported uniform value")
)

// DrawError reports a driver error raised by a draw call together with the
// state that was bound when it happened.
type DrawError struct {
	Code        gl.Enum
	Primitive   Primitive
	Vertices    int
	Indices     int
	Attribs     int
	Program     gl.Program
	Texture     gl.Texture
	VertexBuf   gl.Buffer
	IndexBuffer gl.Buffer
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("%v: %s after drawing %d indices over %d vertices (%s, %d attribs, program %d, texture %d, buffers %d/%d)",
		ErrGL, gl.ErrorString(e.Code), e.Indices, e.Vertices, e.Primitive, e.Attribs,
		e.Program.V, e.Texture.V, e.VertexBuf.V, e.IndexBuffer.V)
}

func (e *DrawError) Unwrap() error {
	return ErrGL
}

// LogValue implements slog.LogValuer.
func (e *DrawError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("code", gl.ErrorString(e.Code)),
		slog.String("primitive", e.Primitive.String()),
		slog.Int("vertices", e.Vertices),
		slog.Int("indices", e.Indices),
		slog.Int("attribs", e.Attribs),
		slog.Uint64("program", uint64(e.Program.V)),
		slog.Uint64("texture", uint64(e.Texture.V)),
		slog.Uint64("vertex_buffer", uint64(e.VertexBuf.V)),
		slog.Uint64("index_buffer", uint64(e.IndexBuffer.V)),
	)
}
