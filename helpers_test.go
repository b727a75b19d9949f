package gfx

import (
	"image"
	"testing"

	"github.com/gogpu/gfx/internal/gltest"
)

const (
	testWidth  = 640
	testHeight = 480
)

// newTestContext returns a Context over a fresh software GL. The context is
// destroyed when the test ends.
func newTestContext(t *testing.T, opts ...ContextOption) (*Context, *gltest.Functions) {
	t.Helper()
	f := gltest.New()
	opts = append([]ContextOption{WithViewport(image.Rect(0, 0, testWidth, testHeight))}, opts...)
	ctx, err := NewContext(f, opts...)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	t.Cleanup(ctx.Destroy)
	return ctx, f
}

func newTestProgram(t *testing.T, ctx *Context) *Program {
	t.Helper()
	p, err := NewSpriteProgram(ctx)
	if err != nil {
		t.Fatalf("NewSpriteProgram() error = %v", err)
	}
	return p
}

func newTestBatch(t *testing.T, ctx *Context, opts ...BatchOption) *BatchRenderer {
	t.Helper()
	r, err := NewBatchRenderer(ctx, DefaultFormat, opts...)
	if err != nil {
		t.Fatalf("NewBatchRenderer() error = %v", err)
	}
	return r
}

// quad returns the four DefaultFormat vertices and six indices of an
// axis-aligned white rectangle.
func quad(x, y, w, h float32) ([]float32, []uint16) {
	v := []float32{
		x, y, 0, 0, 1, 1, 1, 1,
		x + w, y, 1, 0, 1, 1, 1, 1,
		x + w, y + h, 1, 1, 1, 1, 1, 1,
		x, y + h, 0, 1, 1, 1, 1, 1,
	}
	return v, []uint16{0, 1, 2, 0, 2, 3}
}
