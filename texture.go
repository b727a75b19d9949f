package gfx

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/gfx/gl"
)

// Filter selects texture sampling. The zero value is FilterNearest.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) glParam() int {
	return glFilter(f.ToWGPU())
}

// ToWGPU converts to the gputypes filter mode.
func (f Filter) ToWGPU() gputypes.FilterMode {
	if f == FilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "Nearest"
	case FilterLinear:
		return "Linear"
	default:
		return fmt.Sprintf("Filter(%d)", f)
	}
}

// Wrap selects how texture coordinates outside [0, 1] are resolved.
// The zero value is WrapClampToEdge.
type Wrap uint8

const (
	WrapClampToEdge Wrap = iota
	WrapRepeat
)

func (w Wrap) glParam() int {
	return glAddressMode(w.ToWGPU())
}

// ToWGPU converts to the gputypes address mode.
func (w Wrap) ToWGPU() gputypes.AddressMode {
	if w == WrapRepeat {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}

// String returns the wrap mode name.
func (w Wrap) String() string {
	switch w {
	case WrapClampToEdge:
		return "ClampToEdge"
	case WrapRepeat:
		return "Repeat"
	default:
		return fmt.Sprintf("Wrap(%d)", w)
	}
}

// TextureOptions configures a texture. The zero value selects nearest
// filtering and clamp-to-edge wrapping.
type TextureOptions struct {
	Filter Filter
	Wrap   Wrap

	// Label is an optional debug label. It also names the texture when a
	// Picture referencing it is encoded.
	Label string
}

// Texture owns one RGBA8 2D texture.
//
// A texture created with a zero width or height has no storage yet. Storage
// is allocated by the first Update, sized to the uploaded image. Uploaded
// pixels are premultiplied by alpha.
type Texture struct {
	ctx       *Context
	tex       gl.Texture
	width     int
	height    int
	opts      TextureOptions
	allocated bool
	released  bool
}

// NewTexture creates a texture of the given size. Zero dimensions defer
// storage allocation until the first Update.
func NewTexture(ctx *Context, width, height int, opts TextureOptions) (*Texture, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: texture %dx%d", ErrInvalidDimensions, width, height)
	}
	f := ctx.funcs
	h := f.CreateTexture()
	if !h.Valid() {
		return nil, fmt.Errorf("%w: texture %q", ErrResourceCreation, opts.Label)
	}
	t := &Texture{
		ctx:    ctx,
		tex:    h,
		width:  width,
		height: height,
		opts:   opts,
	}

	t.Bind()
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, opts.Filter.glParam())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, opts.Filter.glParam())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, opts.Wrap.glParam())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, opts.Wrap.glParam())
	if width > 0 && height > 0 {
		t.allocate(width, height)
	}
	t.Unbind()

	ctx.Own(t)
	return t, nil
}

// NewTextureFromImage creates a texture sized to img and uploads it.
func NewTextureFromImage(ctx *Context, img image.Image, opts TextureOptions) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image %v", ErrInvalidDimensions, b)
	}
	t, err := NewTexture(ctx, b.Dx(), b.Dy(), opts)
	if err != nil {
		return nil, err
	}
	if err := t.Update(img, 0, 0); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// allocate creates storage for the bound texture.
func (t *Texture) allocate(width, height int) {
	pf := glPixelFormat(t.Format())
	t.ctx.funcs.TexImage2D(gl.TEXTURE_2D, 0, pf.Internal, width, height, pf.Format, pf.Type)
	t.width, t.height = width, height
	t.allocated = true
	Logger().Debug("gfx: texture storage allocated",
		slog.String("label", t.opts.Label),
		slog.Int("width", width),
		slog.Int("height", height))
}

// Update uploads img into the rectangle whose top-left corner is (x, y).
// If the texture has no storage yet, storage of size (x+w, y+h) is
// allocated first, where w and h are the image dimensions.
func (t *Texture) Update(img image.Image, x, y int) error {
	if t.released {
		return ErrReleased
	}
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	pix, w, h := rgbaPixels(img)
	if w == 0 || h == 0 {
		if !t.allocated {
			return fmt.Errorf("%w: cannot allocate storage from empty image", ErrInvalidDimensions)
		}
		return nil
	}
	if x < 0 || y < 0 {
		return fmt.Errorf("%w: negative offset (%d,%d)", ErrInvalidDimensions, x, y)
	}

	t.Bind()
	defer t.Unbind()
	if !t.allocated {
		t.allocate(x+w, y+h)
	}
	if x+w > t.width || y+h > t.height {
		return fmt.Errorf("%w: region (%d,%d)+(%dx%d) exceeds texture bounds (%dx%d)",
			ErrInvalidDimensions, x, y, w, h, t.width, t.height)
	}
	pf := glPixelFormat(t.Format())
	t.ctx.funcs.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, w, h, pf.Format, pf.Type, pix)
	return nil
}

// UpdateFunc is Update with a lazily produced image, such as one decoded
// on demand.
func (t *Texture) UpdateFunc(produce func() image.Image, x, y int) error {
	if produce == nil {
		return errors.New("gfx: nil image producer")
	}
	return t.Update(produce(), x, y)
}

// rgbaPixels returns tightly packed, premultiplied RGBA bytes for img.
// *image.RGBA is already premultiplied and is used without copying when
// its rows are contiguous.
func rgbaPixels(img image.Image) ([]byte, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, w, h
	}
	if rgba, ok := img.(*image.RGBA); ok {
		if rgba.Stride == 4*w {
			return rgba.Pix[:4*w*h], w, h
		}
		pix := make([]byte, 4*w*h)
		for row := 0; row < h; row++ {
			copy(pix[row*4*w:(row+1)*4*w], rgba.Pix[row*rgba.Stride:row*rgba.Stride+4*w])
		}
		return pix, w, h
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix, w, h
}

// Bind makes t the current texture. A released texture binds the zero
// texture instead, so Bind and Unbind stay paired.
func (t *Texture) Bind() {
	if t.released {
		t.ctx.state.Texture.Push(gl.Texture{})
		return
	}
	t.ctx.state.Texture.Push(t.tex)
}

// Unbind restores the texture bound before the matching Bind.
func (t *Texture) Unbind() {
	t.ctx.state.Texture.Pop()
}

// Handle returns the GL texture object.
func (t *Texture) Handle() gl.Texture {
	return t.tex
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return t.height
}

// Allocated reports whether the texture has storage.
func (t *Texture) Allocated() bool {
	return t.allocated
}

// Options returns the options the texture was created with.
func (t *Texture) Options() TextureOptions {
	return t.opts
}

// Label returns the debug label.
func (t *Texture) Label() string {
	return t.opts.Label
}

// Format returns the pixel format of the texture storage.
func (t *Texture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// IsReleased reports whether Release has been called.
func (t *Texture) IsReleased() bool {
	return t.released
}

// Release deletes the GL texture. Later calls do nothing.
func (t *Texture) Release() {
	if t.released {
		return
	}
	t.released = true
	t.ctx.funcs.DeleteTexture(t.tex)
}

// String returns a description of the texture.
func (t *Texture) String() string {
	status := "allocated"
	switch {
	case t.released:
		status = "released"
	case !t.allocated:
		status = "deferred"
	}
	return fmt.Sprintf("Texture[%s %dx%d %s/%s %s]",
		t.opts.Label, t.width, t.height, t.opts.Filter, t.opts.Wrap, status)
}
