// Package gfx is a 2D batch renderer over OpenGL 3.3.
//
// # Overview
//
// Callers submit geometry with a Material to a BatchRenderer. Consecutive
// submissions sharing a material are uploaded together and drawn with one
// call. A new material, or a submission that would overflow the batch,
// flushes the pending run first, so draws reach the GPU in submission
// order.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gfx"
//	    "github.com/gogpu/gfx/gl/opengl"
//	)
//
//	funcs, err := opengl.New()
//	ctx, err := gfx.NewContext(funcs, gfx.WithViewport(image.Rect(0, 0, 800, 600)))
//	defer ctx.Destroy()
//
//	prog, err := gfx.NewSpriteProgram(ctx)
//	r, err := gfx.NewBatchRenderer(ctx, gfx.DefaultFormat)
//
//	mat := gfx.Material{Shader: prog, Texture: tex}
//	r.Push(mat, quadVertices, []uint16{0, 1, 2, 0, 2, 3}, 800, 600)
//	r.Flush(800, 600)
//
// # Binding State
//
// Every binding gfx makes goes through the per-kind stacks in State:
// textures, array and element buffers, framebuffers, renderbuffers,
// viewports and programs. A Pop always restores exactly what the matching
// Push replaced, which makes nested render-to-texture safe:
//
//	fb.Draw(func() error {
//	    ctx.Clear(color.Transparent)
//	    return r.Flush(fb.Width(), fb.Height())
//	})
//
// # Deferred Allocation
//
// A Texture or FrameBuffer created with zero dimensions has no storage
// until it learns its size: the first Update allocates the texture, and a
// framebuffer attaches on the first Bind or Attach after its texture has
// storage.
//
// # Pictures
//
// StartRecording switches a BatchRenderer into recording mode. Submissions
// are then appended to a Picture instead of being drawn, with runs of equal
// materials merged. DrawPicture replays a picture, and Encode/DecodePicture
// persist one.
//
// # Resources
//
// Resources register with their Context on creation. Release frees one
// early; Context.Destroy releases the rest in creation order.
//
// gfx is not safe for concurrent use. All calls must be made on the
// goroutine that owns the GL context.
package gfx
