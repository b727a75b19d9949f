package gfx

import (
	"image"

	"github.com/gogpu/gfx/gl"
)

// State groups the binding stacks for every kind of GPU state gfx touches.
// Each kind has its own stack and bind callback; callbacks never touch
// another kind's binding.
//
// All binding changes made by gfx go through these stacks. Code that binds
// objects directly through gl.Functions breaks the restore guarantee of
// every Pop that follows.
type State struct {
	Texture       *Stack[gl.Texture]
	ArrayBuffer   *Stack[gl.Buffer]
	ElementBuffer *Stack[gl.Buffer]
	Framebuffer   *Stack[gl.Framebuffer]
	Renderbuffer  *Stack[gl.Renderbuffer]
	Viewport      *Stack[image.Rectangle]
	Program       *Stack[gl.Program]
}

// newState creates the stacks and seeds the viewport stack with the
// default viewport, so the viewport stack is never empty afterwards.
//
// Emptied object stacks bind the zero handle, which restores the unbound
// state. An emptied viewport stack leaves the viewport as it is.
func newState(f gl.Functions, viewport image.Rectangle) *State {
	// Textures are only ever bound on unit 0.
	f.ActiveTexture(gl.TEXTURE0)

	s := &State{
		Texture: NewStack("texture",
			func(t gl.Texture) { f.BindTexture(gl.TEXTURE_2D, t) },
			func() { f.BindTexture(gl.TEXTURE_2D, gl.Texture{}) }),
		ArrayBuffer: NewStack("array_buffer",
			func(b gl.Buffer) { f.BindBuffer(gl.ARRAY_BUFFER, b) },
			func() { f.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{}) }),
		ElementBuffer: NewStack("element_buffer",
			func(b gl.Buffer) { f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b) },
			func() { f.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{}) }),
		Framebuffer: NewStack("framebuffer",
			func(fb gl.Framebuffer) { f.BindFramebuffer(gl.FRAMEBUFFER, fb) },
			func() { f.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{}) }),
		Renderbuffer: NewStack("renderbuffer",
			func(rb gl.Renderbuffer) { f.BindRenderbuffer(gl.RENDERBUFFER, rb) },
			func() { f.BindRenderbuffer(gl.RENDERBUFFER, gl.Renderbuffer{}) }),
		Viewport: NewStack("viewport",
			func(r image.Rectangle) { f.Viewport(r.Min.X, r.Min.Y, r.Dx(), r.Dy()) },
			nil),
		Program: NewStack("program",
			func(p gl.Program) { f.UseProgram(p) },
			func() { f.UseProgram(gl.Program{}) }),
	}
	s.Viewport.Push(viewport)
	return s
}
