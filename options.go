package gfx

import "image"

// ContextOption configures a Context during creation.
//
// Example:
//
//	ctx, err := gfx.NewContext(funcs,
//	    gfx.WithViewport(image.Rect(0, 0, 800, 600)),
//	    gfx.WithCamera(cam))
type ContextOption func(*contextOptions)

type contextOptions struct {
	viewport image.Rectangle
	camera   Camera
}

// WithViewport sets the default viewport that seeds the viewport stack.
// It should match the size of the default framebuffer.
func WithViewport(r image.Rectangle) ContextOption {
	return func(o *contextOptions) {
		o.viewport = r
	}
}

// WithCamera sets the camera used for non-fixed geometry.
func WithCamera(c Camera) ContextOption {
	return func(o *contextOptions) {
		o.camera = c
	}
}

// BatchOption configures a BatchRenderer during creation.
//
// Example:
//
//	r, err := gfx.NewBatchRenderer(ctx, gfx.DefaultFormat,
//	    gfx.WithMaxVertices(4096),
//	    gfx.WithMaxIndices(6144))
type BatchOption func(*batchOptions)

type batchOptions struct {
	maxVertices int
	maxIndices  int
}

// WithMaxVertices sets the vertex capacity of the batch. It is clamped to
// the range addressable by 16-bit indices.
func WithMaxVertices(n int) BatchOption {
	return func(o *batchOptions) {
		o.maxVertices = n
	}
}

// WithMaxIndices sets the index capacity of the batch.
func WithMaxIndices(n int) BatchOption {
	return func(o *batchOptions) {
		o.maxIndices = n
	}
}
