package gfx

import (
	"image"
	"slices"
	"testing"

	"github.com/gogpu/gfx/gl"
)

func TestStack_PushPop(t *testing.T) {
	var bound []int
	emptied := 0
	s := NewStack("test", func(v int) { bound = append(bound, v) }, func() { emptied++ })

	s.Push(1)
	s.Push(2)
	s.Push(3)
	if got, _ := s.Current(); got != 3 {
		t.Errorf("Current() = %d, want 3", got)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	s.Pop()
	s.Pop()
	s.Pop()

	want := []int{1, 2, 3, 2, 1}
	if !slices.Equal(bound, want) {
		t.Errorf("bind sequence = %v, want %v", bound, want)
	}
	if emptied != 1 {
		t.Errorf("empty called %d times, want 1", emptied)
	}
	if _, ok := s.Current(); ok {
		t.Error("Current() reported a value on an empty stack")
	}
}

func TestStack_PopEmpty(t *testing.T) {
	calls := 0
	s := NewStack("test", func(int) { calls++ }, func() { calls++ })

	s.Pop()

	if calls != 0 {
		t.Errorf("Pop() on empty stack made %d callbacks, want 0", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStack_NilEmptyCallback(t *testing.T) {
	var bound []string
	s := NewStack("test", func(v string) { bound = append(bound, v) }, nil)

	s.Push("a")
	s.Pop()

	if !slices.Equal(bound, []string{"a"}) {
		t.Errorf("bind sequence = %v, want [a]", bound)
	}
	if s.Kind() != "test" {
		t.Errorf("Kind() = %q, want %q", s.Kind(), "test")
	}
}

func TestState_ViewportSeeded(t *testing.T) {
	ctx, f := newTestContext(t)

	want := image.Rect(0, 0, testWidth, testHeight)
	if got := ctx.Viewport(); got != want {
		t.Errorf("Viewport() = %v, want %v", got, want)
	}
	if f.ViewportRect != want {
		t.Errorf("driver viewport = %v, want %v", f.ViewportRect, want)
	}
	if ctx.State().Viewport.Len() != 1 {
		t.Errorf("viewport stack depth = %d, want 1", ctx.State().Viewport.Len())
	}
	if f.ActiveUnit != gl.TEXTURE0 {
		t.Errorf("active texture unit = %d, want TEXTURE0", f.ActiveUnit)
	}
}

// binding captures everything the state stacks control in the driver.
type binding struct {
	texture       gl.Texture
	arrayBuffer   gl.Buffer
	elementBuffer gl.Buffer
	framebuffer   gl.Framebuffer
	renderbuffer  gl.Renderbuffer
	viewport      image.Rectangle
	program       gl.Program
}

func TestState_RestoreAcrossKinds(t *testing.T) {
	ctx, f := newTestContext(t)
	st := ctx.State()
	snapshot := func() binding {
		return binding{
			texture:       f.BoundTexture,
			arrayBuffer:   f.ArrayBuffer,
			elementBuffer: f.ElementBuffer,
			framebuffer:   f.BoundFramebuffer,
			renderbuffer:  f.BoundRenderbuffer,
			viewport:      f.ViewportRect,
			program:       f.CurrentProgram,
		}
	}

	tests := []struct {
		name string
		push func()
		pop  func()
	}{
		{"texture", func() { st.Texture.Push(gl.Texture{V: 7}) }, st.Texture.Pop},
		{"array buffer", func() { st.ArrayBuffer.Push(gl.Buffer{V: 8}) }, st.ArrayBuffer.Pop},
		{"element buffer", func() { st.ElementBuffer.Push(gl.Buffer{V: 9}) }, st.ElementBuffer.Pop},
		{"framebuffer", func() { st.Framebuffer.Push(gl.Framebuffer{V: 10}) }, st.Framebuffer.Pop},
		{"renderbuffer", func() { st.Renderbuffer.Push(gl.Renderbuffer{V: 11}) }, st.Renderbuffer.Pop},
		{"viewport", func() { st.Viewport.Push(image.Rect(0, 0, 4, 4)) }, st.Viewport.Pop},
		{"program", func() { st.Program.Push(gl.Program{V: 12}) }, st.Program.Pop},
	}

	// Establish non-default bindings underneath, then nest every kind on
	// top and unwind in reverse.
	st.Texture.Push(gl.Texture{V: 1})
	st.ArrayBuffer.Push(gl.Buffer{V: 2})
	st.Framebuffer.Push(gl.Framebuffer{V: 3})
	before := snapshot()

	var states []binding
	for _, tt := range tests {
		states = append(states, snapshot())
		tt.push()
	}
	for i := len(tests) - 1; i >= 0; i-- {
		tests[i].pop()
		if got := snapshot(); got != states[i] {
			t.Errorf("after popping %s: bindings = %+v, want %+v", tests[i].name, got, states[i])
		}
	}
	if got := snapshot(); got != before {
		t.Errorf("bindings = %+v, want %+v", got, before)
	}

	st.Framebuffer.Pop()
	st.ArrayBuffer.Pop()
	st.Texture.Pop()
	if f.BoundTexture.Valid() || f.ArrayBuffer.Valid() || f.BoundFramebuffer.Valid() {
		t.Error("emptied stacks did not restore the zero bindings")
	}
}

func TestState_InterleavedKinds(t *testing.T) {
	ctx, f := newTestContext(t)
	st := ctx.State()

	st.Texture.Push(gl.Texture{V: 1})
	st.ArrayBuffer.Push(gl.Buffer{V: 5})
	st.Texture.Push(gl.Texture{V: 2})
	st.ArrayBuffer.Push(gl.Buffer{V: 6})

	st.Texture.Pop()
	if f.BoundTexture.V != 1 {
		t.Errorf("texture = %d, want 1", f.BoundTexture.V)
	}
	if f.ArrayBuffer.V != 6 {
		t.Errorf("array buffer = %d, want 6 (untouched by texture pop)", f.ArrayBuffer.V)
	}

	st.ArrayBuffer.Pop()
	if f.ArrayBuffer.V != 5 {
		t.Errorf("array buffer = %d, want 5", f.ArrayBuffer.V)
	}
}
