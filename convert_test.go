package gfx

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx/gl"
)

func TestBlendMode_State(t *testing.T) {
	if got := BlendNormal.State(); got != gputypes.BlendStatePremultiplied() {
		t.Errorf("BlendNormal.State() = %+v, want premultiplied", got)
	}
	for _, m := range []BlendMode{BlendNormal, BlendAdd, BlendMultiply, BlendScreen, BlendOverlay} {
		s := m.State()
		if s.Color.Operation != gputypes.BlendOperationAdd || s.Alpha.Operation != gputypes.BlendOperationAdd {
			t.Errorf("%v: operations = %v/%v, want Add", m, s.Color.Operation, s.Alpha.Operation)
		}
		if s.Alpha != premultipliedAlpha {
			t.Errorf("%v: alpha = %+v, want premultiplied source-over", m, s.Alpha)
		}
	}
	if BlendMode(42).State() != BlendNormal.State() {
		t.Error("unknown mode does not fall back to BlendNormal")
	}
}

func TestGLBlendFactor(t *testing.T) {
	tests := []struct {
		in   gputypes.BlendFactor
		want gl.Enum
	}{
		{gputypes.BlendFactorZero, gl.ZERO},
		{gputypes.BlendFactorOne, gl.ONE},
		{gputypes.BlendFactorSrc, gl.SRC_COLOR},
		{gputypes.BlendFactorOneMinusSrc, gl.ONE_MINUS_SRC_COLOR},
		{gputypes.BlendFactorSrcAlpha, gl.SRC_ALPHA},
		{gputypes.BlendFactorOneMinusSrcAlpha, gl.ONE_MINUS_SRC_ALPHA},
		{gputypes.BlendFactorDst, gl.DST_COLOR},
		{gputypes.BlendFactorOneMinusDst, gl.ONE_MINUS_DST_COLOR},
		{gputypes.BlendFactorDstAlpha, gl.DST_ALPHA},
		{gputypes.BlendFactorOneMinusDstAlpha, gl.ONE_MINUS_DST_ALPHA},
		{gputypes.BlendFactorSrcAlphaSaturated, gl.SRC_ALPHA_SATURATE},
		{gputypes.BlendFactorConstant, gl.CONSTANT_COLOR},
		{gputypes.BlendFactorOneMinusConstant, gl.ONE_MINUS_CONSTANT_COLOR},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			if got := glBlendFactor(tt.in); got != tt.want {
				t.Errorf("glBlendFactor(%v) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestGLSamplerParams(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"nearest", FilterNearest.glParam(), gl.NEAREST},
		{"linear", FilterLinear.glParam(), gl.LINEAR},
		{"clamp", WrapClampToEdge.glParam(), gl.CLAMP_TO_EDGE},
		{"repeat", WrapRepeat.glParam(), gl.REPEAT},
		{"mirror", glAddressMode(gputypes.AddressModeMirrorRepeat), gl.MIRRORED_REPEAT},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %#x, want %#x", tt.got, tt.want)
			}
		})
	}
}

func TestGLStorageFormats(t *testing.T) {
	if pf := glPixelFormat(gputypes.TextureFormatRGBA8Unorm); pf != (pixelFormat{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}) {
		t.Errorf("RGBA8Unorm = %+v", pf)
	}
	if pf := glPixelFormat(gputypes.TextureFormatRGBA8UnormSrgb); pf.Internal != gl.SRGB8_ALPHA8 {
		t.Errorf("RGBA8UnormSrgb internal = %#x, want SRGB8_ALPHA8", pf.Internal)
	}

	depth := []struct {
		in   gputypes.TextureFormat
		want gl.Enum
	}{
		{gputypes.TextureFormatDepth24PlusStencil8, gl.DEPTH24_STENCIL8},
		{gputypes.TextureFormatDepth16Unorm, gl.DEPTH_COMPONENT16},
		{gputypes.TextureFormatDepth24Plus, gl.DEPTH_COMPONENT24},
		{gputypes.TextureFormatDepth32Float, gl.DEPTH_COMPONENT32F},
	}
	for _, tt := range depth {
		if got := glRenderbufferFormat(tt.in); got != tt.want {
			t.Errorf("glRenderbufferFormat(%v) = %#x, want %#x", tt.in, got, tt.want)
		}
	}

	if typ, size := glIndexType(gputypes.IndexFormatUint32); typ != gl.UNSIGNED_INT || size != 4 {
		t.Errorf("Uint32 = (%#x, %d), want (UNSIGNED_INT, 4)", typ, size)
	}
	if indexType != gl.UNSIGNED_SHORT || indexSize != 2 {
		t.Errorf("index type = (%#x, %d), want (UNSIGNED_SHORT, 2)", indexType, indexSize)
	}
}

func TestTexture_StorageFollowsFormat(t *testing.T) {
	ctx, f := newTestContext(t)
	tex, err := NewTexture(ctx, 2, 2, TextureOptions{})
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	fb, err := NewFrameBuffer(ctx, 2, 2, TextureOptions{})
	if err != nil {
		t.Fatalf("NewFrameBuffer() error = %v", err)
	}
	if want := glPixelFormat(tex.Format()).Internal; f.Textures[tex.Handle().V].InternalFormat != want {
		t.Errorf("texture internal format = %#x, want %#x", f.Textures[tex.Handle().V].InternalFormat, want)
	}
	if want := glRenderbufferFormat(fb.DepthFormat()); f.Renderbuffers[fb.rb.V].Format != want {
		t.Errorf("renderbuffer format = %#x, want %#x", f.Renderbuffers[fb.rb.V].Format, want)
	}
}
