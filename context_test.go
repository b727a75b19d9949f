package gfx

import (
	"errors"
	"image/color"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/gfx/gl"
	"github.com/gogpu/gfx/internal/gltest"
)

type recordingReleaser struct {
	name string
	log  *[]string
}

func (r recordingReleaser) Release() { *r.log = append(*r.log, r.name) }

func TestNewContext(t *testing.T) {
	if _, err := NewContext(nil); !errors.Is(err, ErrNilFunctions) {
		t.Errorf("NewContext(nil) error = %v, want ErrNilFunctions", err)
	}

	ctx, f := newTestContext(t)
	if !f.Enabled[gl.BLEND] {
		t.Error("BLEND not enabled")
	}
	for _, p := range []gl.Enum{gl.UNPACK_ALIGNMENT, gl.PACK_ALIGNMENT} {
		if f.PixelStore[p] != 1 {
			t.Errorf("pixel store %d = %d, want 1", p, f.PixelStore[p])
		}
	}
	if ctx.CameraTransform() != mgl32.Ident4() {
		t.Error("default camera is not the identity")
	}
}

func TestNewContext_MaxAttribs(t *testing.T) {
	tests := []struct {
		name     string
		reported int
		want     int
	}{
		{"reported", 8, 8},
		{"unreported", 0, defaultMaxAttribs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := gltest.New()
			f.MaxVertexAttribs = tt.reported
			ctx, err := NewContext(f)
			if err != nil {
				t.Fatalf("NewContext() error = %v", err)
			}
			defer ctx.Destroy()
			if ctx.maxAttribs != tt.want {
				t.Errorf("maxAttribs = %d, want %d", ctx.maxAttribs, tt.want)
			}
		})
	}
}

func TestContext_Camera(t *testing.T) {
	ctx, _ := newTestContext(t)
	m := mgl32.Scale3D(2, 2, 1)

	ctx.SetCamera(CameraFunc(func() mgl32.Mat4 { return m }))
	if ctx.CameraTransform() != m {
		t.Errorf("CameraTransform() = %v, want %v", ctx.CameraTransform(), m)
	}
	ctx.SetCamera(nil)
	if ctx.CameraTransform() != mgl32.Ident4() {
		t.Error("SetCamera(nil) did not restore the identity")
	}
}

func TestContext_Clear(t *testing.T) {
	ctx, f := newTestContext(t)
	ctx.Clear(color.RGBA{R: 255, G: 0, B: 0, A: 255})

	if f.ClearRGBA != [4]float32{1, 0, 0, 1} {
		t.Errorf("clear color = %v, want red", f.ClearRGBA)
	}
	if f.Calls["Clear"] != 1 {
		t.Errorf("Clear calls = %d, want 1", f.Calls["Clear"])
	}
}

func TestContext_DestroyOrder(t *testing.T) {
	ctx, _ := newTestContext(t)
	var log []string
	for _, name := range []string{"first", "second", "third"} {
		ctx.Own(recordingReleaser{name: name, log: &log})
	}

	ctx.Destroy()
	ctx.Destroy()

	if want := []string{"first", "second", "third"}; !slices.Equal(log, want) {
		t.Errorf("release order = %v, want %v", log, want)
	}
}

func TestContext_DestroyReleasesResources(t *testing.T) {
	ctx, f := newTestContext(t)
	newTestProgram(t, ctx)
	newTestBatch(t, ctx)
	newTestMesh(t, ctx)
	newTestFrameBuffer(t, ctx, 4, 4)
	early, _ := NewTexture(ctx, 1, 1, TextureOptions{})
	early.Release()

	ctx.Destroy()

	for _, kind := range []string{
		gltest.KindBuffer, gltest.KindTexture, gltest.KindFramebuffer,
		gltest.KindRenderbuffer, gltest.KindProgram, gltest.KindShader,
	} {
		if n := f.Live(kind); n != 0 {
			t.Errorf("live %s objects = %d, want 0", kind, n)
		}
	}
	if f.DoubleDeletes != 0 {
		t.Errorf("double deletes = %d, want 0", f.DoubleDeletes)
	}
}
