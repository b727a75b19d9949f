package gfx

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gfx/gl"
)

// ErrNilFunctions is returned by NewContext when no GL implementation is given.
var ErrNilFunctions = errors.New("gfx: nil gl.Functions")

// defaultMaxAttribs is used when the driver does not report
// MAX_VERTEX_ATTRIBS. GL 3.3 guarantees at least 16.
const defaultMaxAttribs = 16

// Releaser is implemented by every resource a Context owns.
type Releaser interface {
	Release()
}

// Camera provides the view transform applied to geometry that is not
// screen-fixed.
type Camera interface {
	Transform() mgl32.Mat4
}

// CameraFunc adapts a function to the Camera interface.
type CameraFunc func() mgl32.Mat4

// Transform calls f.
func (f CameraFunc) Transform() mgl32.Mat4 { return f() }

// identityCamera is the camera used until SetCamera is called.
type identityCamera struct{}

func (identityCamera) Transform() mgl32.Mat4 { return mgl32.Ident4() }

// Context owns the GL function table, the binding stacks, and every
// resource created against it.
//
// Resources register themselves on creation. Destroy releases them in
// registration order; resources already released explicitly are skipped.
//
// A Context is not safe for concurrent use. All calls must happen on the
// goroutine that owns the GL context.
type Context struct {
	funcs      gl.Functions
	state      *State
	camera     Camera
	maxAttribs int

	// Last vertex layout configured through setVertexFormat.
	layoutFormat VertexFormat
	layoutBuffer gl.Buffer

	owned     []Releaser
	destroyed bool
}

// NewContext wraps f. The GL context behind f must be current.
func NewContext(f gl.Functions, opts ...ContextOption) (*Context, error) {
	if f == nil {
		return nil, ErrNilFunctions
	}
	o := contextOptions{camera: identityCamera{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.camera == nil {
		o.camera = identityCamera{}
	}

	maxAttribs := f.GetInteger(gl.MAX_VERTEX_ATTRIBS)
	if maxAttribs <= 0 {
		maxAttribs = defaultMaxAttribs
	}

	c := &Context{
		funcs:      f,
		state:      newState(f, o.viewport),
		camera:     o.camera,
		maxAttribs: maxAttribs,
	}
	f.Enable(gl.BLEND)
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.PixelStorei(gl.PACK_ALIGNMENT, 1)

	Logger().Info("gfx: context created",
		slog.String("viewport", o.viewport.String()),
		slog.Int("max_vertex_attribs", maxAttribs))
	return c, nil
}

// Functions returns the GL function table.
func (c *Context) Functions() gl.Functions {
	return c.funcs
}

// State returns the binding stacks.
func (c *Context) State() *State {
	return c.state
}

// SetCamera replaces the camera. A nil camera restores the identity.
func (c *Context) SetCamera(cam Camera) {
	if cam == nil {
		cam = identityCamera{}
	}
	c.camera = cam
}

// CameraTransform returns the current camera transform.
func (c *Context) CameraTransform() mgl32.Mat4 {
	return c.camera.Transform()
}

// Viewport returns the current viewport.
func (c *Context) Viewport() image.Rectangle {
	r, _ := c.state.Viewport.Current()
	return r
}

// Clear fills the current render target with col and resets depth and
// stencil.
func (c *Context) Clear(col color.Color) {
	r, g, b, a := col.RGBA()
	c.funcs.ClearColor(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	c.funcs.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// Own registers r for release by Destroy. Resources created by gfx call
// Own themselves.
func (c *Context) Own(r Releaser) {
	c.owned = append(c.owned, r)
}

// Destroy releases every owned resource once, in registration order.
// Calling Destroy again does nothing.
func (c *Context) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	for _, r := range c.owned {
		r.Release()
	}
	Logger().Info("gfx: context destroyed", slog.Int("resources", len(c.owned)))
	c.owned = nil
}

// setVertexFormat points attributes 0..len(f)-1 at the array buffer
// currently bound and disables the slots above them. The layout is only
// respecified when the format differs structurally from the last one, or
// when it must be pointed at a different buffer.
func (c *Context) setVertexFormat(f VertexFormat, buf gl.Buffer) {
	if buf == c.layoutBuffer && f.Equal(c.layoutFormat) {
		return
	}
	stride := f.Stride() * 4
	offset := 0
	for i, a := range f {
		c.funcs.VertexAttribPointer(gl.Attrib(i), a.Size, gl.FLOAT, false, stride, offset)
		c.funcs.EnableVertexAttribArray(gl.Attrib(i))
		offset += a.Size * 4
	}
	for i := len(f); i < c.maxAttribs; i++ {
		c.funcs.DisableVertexAttribArray(gl.Attrib(i))
	}
	c.layoutFormat = f.Clone()
	c.layoutBuffer = buf
	Logger().Debug("gfx: vertex layout configured",
		slog.Int("attribs", len(f)),
		slog.Int("stride_bytes", stride),
		slog.Uint64("buffer", uint64(buf.V)))
}

// forgetBuffer drops the cached layout if it refers to b, so a recycled
// handle is never mistaken for a configured one.
func (c *Context) forgetBuffer(b gl.Buffer) {
	if c.layoutBuffer == b {
		c.layoutFormat = nil
		c.layoutBuffer = gl.Buffer{}
	}
}
