package gfx

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/gl"
)

// FrameBuffer is an offscreen render target: a color Texture and a
// depth/stencil renderbuffer attached to a framebuffer object.
//
// Attachment follows the texture. If the texture has storage when the
// framebuffer is created, attachment happens immediately; otherwise it
// happens on the first Bind or Attach after the texture receives storage.
// Binding earlier targets the unattached framebuffer.
type FrameBuffer struct {
	ctx      *Context
	tex      *Texture
	fb       gl.Framebuffer
	rb       gl.Renderbuffer
	attached bool
	released bool

	// Number of Binds not yet matched by Unbind.
	binds int
}

// NewFrameBuffer creates a framebuffer whose color attachment is a new
// texture of the given size. Zero dimensions defer allocation and
// attachment.
func NewFrameBuffer(ctx *Context, width, height int, opts TextureOptions) (*FrameBuffer, error) {
	tex, err := NewTexture(ctx, width, height, opts)
	if err != nil {
		return nil, err
	}
	f := ctx.funcs
	fb := f.CreateFramebuffer()
	if !fb.Valid() {
		tex.Release()
		return nil, fmt.Errorf("%w: framebuffer %q", ErrResourceCreation, opts.Label)
	}
	rb := f.CreateRenderbuffer()
	if !rb.Valid() {
		f.DeleteFramebuffer(fb)
		tex.Release()
		return nil, fmt.Errorf("%w: renderbuffer %q", ErrResourceCreation, opts.Label)
	}

	b := &FrameBuffer{ctx: ctx, tex: tex, fb: fb, rb: rb}
	b.Attach() //nolint:errcheck // logged by attach; Bind reports it again
	ctx.Own(b)
	return b, nil
}

// Attach completes attachment if the texture has storage and b is not yet
// attached. It restores the previous bindings before returning. An
// incomplete framebuffer yields ErrFramebufferIncomplete and b stays usable.
func (b *FrameBuffer) Attach() error {
	if b.released {
		return ErrReleased
	}
	if b.attached || !b.tex.Allocated() {
		return nil
	}
	st := b.ctx.state
	st.Framebuffer.Push(b.fb)
	st.Renderbuffer.Push(b.rb)
	defer func() {
		st.Renderbuffer.Pop()
		st.Framebuffer.Pop()
	}()
	return b.attach()
}

// attach allocates depth/stencil storage and attaches both buffers to the
// bound framebuffer. The framebuffer and renderbuffer must be bound.
// Until the texture has storage it does nothing and b stays unattached.
// Incompleteness is logged and returned but leaves the framebuffer usable.
func (b *FrameBuffer) attach() error {
	if !b.tex.Allocated() {
		return nil
	}
	f := b.ctx.funcs
	w, h := b.tex.Width(), b.tex.Height()
	f.RenderbufferStorage(gl.RENDERBUFFER, glRenderbufferFormat(b.DepthFormat()), w, h)
	f.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.tex.Handle(), 0)
	f.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, b.rb)
	b.attached = true

	if st := f.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		err := fmt.Errorf("%w: %s", ErrFramebufferIncomplete, gl.FramebufferStatusString(st))
		Logger().Warn("gfx: framebuffer incomplete",
			slog.String("label", b.tex.Label()),
			slog.String("status", gl.FramebufferStatusString(st)),
			slog.Int("width", w),
			slog.Int("height", h))
		return err
	}
	Logger().Debug("gfx: framebuffer attached",
		slog.String("label", b.tex.Label()),
		slog.Int("width", w),
		slog.Int("height", h))
	return nil
}

// Bind makes b the render target and sets the viewport to its size. The
// previous target is restored by Unbind. If attachment was deferred it
// happens now; an incomplete framebuffer is reported through the returned
// error but stays bound, so Unbind must still be called.
//
// Bind on a released framebuffer returns ErrReleased and binds nothing.
func (b *FrameBuffer) Bind() error {
	if b.released {
		return ErrReleased
	}
	b.binds++
	st := b.ctx.state
	st.Framebuffer.Push(b.fb)
	st.Renderbuffer.Push(b.rb)
	var err error
	if !b.attached {
		err = b.attach()
	}
	st.Viewport.Push(image.Rect(0, 0, b.tex.Width(), b.tex.Height()))
	return err
}

// Unbind restores the render target and viewport active before Bind.
// Unbind without a matching successful Bind does nothing.
func (b *FrameBuffer) Unbind() {
	if b.binds == 0 {
		return
	}
	b.binds--
	st := b.ctx.state
	st.Viewport.Pop()
	st.Renderbuffer.Pop()
	st.Framebuffer.Pop()
}

// Draw runs action with b bound. Unbind runs after action returns, whether
// or not it fails.
func (b *FrameBuffer) Draw(action func() error) error {
	bindErr := b.Bind()
	if errors.Is(bindErr, ErrReleased) {
		return bindErr
	}
	defer b.Unbind()
	return errors.Join(bindErr, action())
}

// ToImage reads the color attachment back. Row 0 of the result is the top
// of the framebuffer.
func (b *FrameBuffer) ToImage() (*image.RGBA, error) {
	if b.released {
		return nil, ErrReleased
	}
	w, h := b.tex.Width(), b.tex.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img, nil
	}

	st := b.ctx.state
	st.Framebuffer.Push(b.fb)
	pf := glPixelFormat(b.tex.Format())
	b.ctx.funcs.ReadPixels(0, 0, w, h, pf.Format, pf.Type, img.Pix)
	st.Framebuffer.Pop()

	// GL rows start at the bottom.
	row := make([]byte, img.Stride)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[top*img.Stride : (top+1)*img.Stride]
		bt := img.Pix[bottom*img.Stride : (bottom+1)*img.Stride]
		copy(row, t)
		copy(t, bt)
		copy(bt, row)
	}
	return img, nil
}

// Export reads the color attachment back and encodes it to w.
func (b *FrameBuffer) Export(w io.Writer, format ImageFormat) error {
	img, err := b.ToImage()
	if err != nil {
		return err
	}
	return EncodeImage(w, img, format)
}

// Texture returns the color attachment.
func (b *FrameBuffer) Texture() *Texture {
	return b.tex
}

// Width returns the width of the color attachment.
func (b *FrameBuffer) Width() int {
	return b.tex.Width()
}

// Height returns the height of the color attachment.
func (b *FrameBuffer) Height() int {
	return b.tex.Height()
}

// Attached reports whether the attachments have been made.
func (b *FrameBuffer) Attached() bool {
	return b.attached
}

// DepthFormat returns the format of the depth/stencil attachment.
func (b *FrameBuffer) DepthFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatDepth24PlusStencil8
}

// Release deletes the framebuffer, the renderbuffer, and the color
// texture.
func (b *FrameBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.ctx.funcs.DeleteFramebuffer(b.fb)
	b.ctx.funcs.DeleteRenderbuffer(b.rb)
	b.tex.Release()
}

func (b *FrameBuffer) String() string {
	return fmt.Sprintf("FrameBuffer(%q, %dx%d, attached=%t)", b.tex.Label(), b.tex.Width(), b.tex.Height(), b.attached)
}
