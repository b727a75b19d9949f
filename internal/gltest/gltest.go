// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gltest provides a software implementation of gl.Functions that
// records state and calls for tests. It stores buffer, texture and
// framebuffer contents but does not rasterize; Clear is the only operation
// that writes pixels.
package gltest

import (
	"encoding/binary"
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gfx/gl"
)

// Object kinds accepted by FailCreate and Live.
const (
	KindBuffer       = "buffer"
	KindTexture      = "texture"
	KindFramebuffer  = "framebuffer"
	KindRenderbuffer = "renderbuffer"
	KindProgram      = "program"
	KindShader       = "shader"
)

// Buffer is the storage of a buffer object.
type Buffer struct {
	Data  []byte
	Usage gl.Enum
}

// Texture is the storage of a texture object. Pix holds Height rows of
// RGBA8 pixels with row 0 at the bottom, as GL addresses them.
type Texture struct {
	Width, Height  int
	InternalFormat gl.Enum
	Pix            []byte
	Params         map[gl.Enum]int
	Allocations    int
}

// Framebuffer records the attachments of a framebuffer object.
type Framebuffer struct {
	Color        gl.Texture
	DepthStencil gl.Renderbuffer
}

// Renderbuffer records the storage of a renderbuffer object.
type Renderbuffer struct {
	Format        gl.Enum
	Width, Height int
}

// Shader is a shader object.
type Shader struct {
	Type     gl.Enum
	Source   string
	Compiled bool
}

// Program is a program object. Uniforms holds the last value uploaded to
// each uniform: float32 or int for scalars, [2]float32, [3]float32 and
// [4]float32 for vectors, and []float32 for arrays and matrices.
type Program struct {
	Shaders  []gl.Shader
	Attribs  map[string]gl.Attrib
	Linked   bool
	Uniforms map[string]any

	locations map[string]int
	names     map[int]string
}

// AttribPointer is the layout of one vertex attribute.
type AttribPointer struct {
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
	Buffer     gl.Buffer
}

// BlendState is the blend function configured by BlendFuncSeparate.
type BlendState struct {
	SrcRGB, DstRGB, SrcAlpha, DstAlpha gl.Enum
}

// DrawCall records one DrawElements call and the state it saw.
type DrawCall struct {
	Mode          gl.Enum
	Count         int
	Type          gl.Enum
	Offset        int
	Indices       []uint16
	Program       gl.Program
	Texture       gl.Texture
	ArrayBuffer   gl.Buffer
	ElementBuffer gl.Buffer
	Framebuffer   gl.Framebuffer
	Viewport      image.Rectangle
	Blend         BlendState
	Uniforms      map[string]any
}

// Functions is a software gl.Functions. Exported fields may be inspected
// and modified by tests between calls.
type Functions struct {
	Buffers       map[uint]*Buffer
	Textures      map[uint]*Texture
	Framebuffers  map[uint]*Framebuffer
	Renderbuffers map[uint]*Renderbuffer
	Shaders       map[uint]*Shader
	Programs      map[uint]*Program

	ArrayBuffer       gl.Buffer
	ElementBuffer     gl.Buffer
	BoundTexture      gl.Texture
	ActiveUnit        gl.Enum
	BoundFramebuffer  gl.Framebuffer
	BoundRenderbuffer gl.Renderbuffer
	CurrentProgram    gl.Program
	ViewportRect      image.Rectangle
	Blend             BlendState
	ClearRGBA         [4]float32
	Enabled           map[gl.Enum]bool
	PixelStore        map[gl.Enum]int
	AttribEnabled     map[gl.Attrib]bool
	AttribPointers    map[gl.Attrib]AttribPointer

	// Draws lists every DrawElements call in order.
	Draws []DrawCall

	// Calls counts invocations per method name.
	Calls map[string]int

	// DoubleDeletes counts deletions of handles that were not live.
	DoubleDeletes int

	// MaxVertexAttribs is reported for MAX_VERTEX_ATTRIBS.
	MaxVertexAttribs int

	// FramebufferStatus, when non-zero, is returned by
	// CheckFramebufferStatus instead of the computed status.
	FramebufferStatus gl.Enum

	// CompileLog and LinkLog, when non-empty, make every compile or link
	// fail with that info log.
	CompileLog string
	LinkLog    string

	errors    []gl.Enum
	next      uint
	failAfter map[string]int
}

// New returns a Functions with no objects and default state.
func New() *Functions {
	return &Functions{
		Buffers:          make(map[uint]*Buffer),
		Textures:         make(map[uint]*Texture),
		Framebuffers:     make(map[uint]*Framebuffer),
		Renderbuffers:    make(map[uint]*Renderbuffer),
		Shaders:          make(map[uint]*Shader),
		Programs:         make(map[uint]*Program),
		Enabled:          make(map[gl.Enum]bool),
		PixelStore:       make(map[gl.Enum]int),
		AttribEnabled:    make(map[gl.Attrib]bool),
		AttribPointers:   make(map[gl.Attrib]AttribPointer),
		Calls:            make(map[string]int),
		MaxVertexAttribs: 16,
		failAfter:        make(map[string]int),
	}
}

// FailCreate makes creation of the given kind fail once after more
// objects of that kind have been created successfully.
func (f *Functions) FailCreate(kind string, after int) {
	f.failAfter[kind] = after
}

// PushError queues code to be returned by the next GetError.
func (f *Functions) PushError(code gl.Enum) {
	f.errors = append(f.errors, code)
}

// Live returns the number of live objects of the given kind.
func (f *Functions) Live(kind string) int {
	switch kind {
	case KindBuffer:
		return len(f.Buffers)
	case KindTexture:
		return len(f.Textures)
	case KindFramebuffer:
		return len(f.Framebuffers)
	case KindRenderbuffer:
		return len(f.Renderbuffers)
	case KindProgram:
		return len(f.Programs)
	case KindShader:
		return len(f.Shaders)
	}
	panic(fmt.Sprintf("gltest: unknown kind %q", kind))
}

// ProgramUniform returns the last value uploaded to name in p.
func (f *Functions) ProgramUniform(p gl.Program, name string) (any, bool) {
	prog, ok := f.Programs[p.V]
	if !ok {
		return nil, false
	}
	v, ok := prog.Uniforms[name]
	return v, ok
}

func (f *Functions) call(name string) {
	f.Calls[name]++
}

func (f *Functions) fail(code gl.Enum) {
	f.errors = append(f.errors, code)
}

// create returns a fresh handle value, or 0 if creation of kind is set to
// fail.
func (f *Functions) create(kind string) uint {
	if n, ok := f.failAfter[kind]; ok {
		if n == 0 {
			delete(f.failAfter, kind)
			return 0
		}
		f.failAfter[kind] = n - 1
	}
	f.next++
	return f.next
}

func (f *Functions) boundBuffer(target gl.Enum) *Buffer {
	switch target {
	case gl.ARRAY_BUFFER:
		return f.Buffers[f.ArrayBuffer.V]
	case gl.ELEMENT_ARRAY_BUFFER:
		return f.Buffers[f.ElementBuffer.V]
	}
	return nil
}

func (f *Functions) boundTexture() *Texture {
	return f.Textures[f.BoundTexture.V]
}

// colorTarget returns the color texture of the bound framebuffer.
func (f *Functions) colorTarget() *Texture {
	fb, ok := f.Framebuffers[f.BoundFramebuffer.V]
	if !ok {
		return nil
	}
	return f.Textures[fb.Color.V]
}

func (f *Functions) ActiveTexture(unit gl.Enum) {
	f.call("ActiveTexture")
	f.ActiveUnit = unit
}

func (f *Functions) AttachShader(p gl.Program, s gl.Shader) {
	f.call("AttachShader")
	if prog, ok := f.Programs[p.V]; ok {
		prog.Shaders = append(prog.Shaders, s)
	}
}

func (f *Functions) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	f.call("BindAttribLocation")
	if prog, ok := f.Programs[p.V]; ok {
		prog.Attribs[name] = a
	}
}

func (f *Functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.call("BindBuffer")
	switch target {
	case gl.ARRAY_BUFFER:
		f.ArrayBuffer = b
	case gl.ELEMENT_ARRAY_BUFFER:
		f.ElementBuffer = b
	default:
		f.fail(gl.INVALID_ENUM)
	}
}

func (f *Functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.call("BindFramebuffer")
	f.BoundFramebuffer = fb
}

func (f *Functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.call("BindRenderbuffer")
	f.BoundRenderbuffer = rb
}

func (f *Functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.call("BindTexture")
	f.BoundTexture = t
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	f.call("BlendFuncSeparate")
	f.Blend = BlendState{SrcRGB: srcRGB, DstRGB: dstRGB, SrcAlpha: srcA, DstAlpha: dstA}
}

func (f *Functions) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	f.call("BufferData")
	b := f.boundBuffer(target)
	if b == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	b.Data = make([]byte, size)
	copy(b.Data, data)
	b.Usage = usage
}

func (f *Functions) BufferSubData(target gl.Enum, offset int, src []byte) {
	f.call("BufferSubData")
	b := f.boundBuffer(target)
	if b == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	if offset < 0 || offset+len(src) > len(b.Data) {
		f.fail(gl.INVALID_VALUE)
		return
	}
	copy(b.Data[offset:], src)
}

func (f *Functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	f.call("CheckFramebufferStatus")
	if f.FramebufferStatus != 0 {
		return f.FramebufferStatus
	}
	fb, ok := f.Framebuffers[f.BoundFramebuffer.V]
	if !ok {
		return gl.FRAMEBUFFER_COMPLETE
	}
	tex, ok := f.Textures[fb.Color.V]
	if !ok {
		return gl.FRAMEBUFFER_MISSING_ATTACH
	}
	if tex.Allocations == 0 || tex.Width == 0 || tex.Height == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE_ATTACH
	}
	if rb, ok := f.Renderbuffers[fb.DepthStencil.V]; ok && (rb.Width != tex.Width || rb.Height != tex.Height) {
		return gl.FRAMEBUFFER_INCOMPLETE_ATTACH
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (f *Functions) Clear(mask gl.Enum) {
	f.call("Clear")
	if mask&gl.COLOR_BUFFER_BIT == 0 {
		return
	}
	tex := f.colorTarget()
	if tex == nil {
		return
	}
	var px [4]byte
	for i, c := range f.ClearRGBA {
		px[i] = byte(min(max(c, 0), 1)*255 + 0.5)
	}
	for i := 0; i+4 <= len(tex.Pix); i += 4 {
		copy(tex.Pix[i:i+4], px[:])
	}
}

func (f *Functions) ClearColor(r, g, b, a float32) {
	f.call("ClearColor")
	f.ClearRGBA = [4]float32{r, g, b, a}
}

func (f *Functions) CompileShader(s gl.Shader) {
	f.call("CompileShader")
	if sh, ok := f.Shaders[s.V]; ok {
		sh.Compiled = f.CompileLog == ""
	}
}

func (f *Functions) CreateBuffer() gl.Buffer {
	f.call("CreateBuffer")
	id := f.create(KindBuffer)
	if id != 0 {
		f.Buffers[id] = &Buffer{}
	}
	return gl.Buffer{V: id}
}

func (f *Functions) CreateFramebuffer() gl.Framebuffer {
	f.call("CreateFramebuffer")
	id := f.create(KindFramebuffer)
	if id != 0 {
		f.Framebuffers[id] = &Framebuffer{}
	}
	return gl.Framebuffer{V: id}
}

func (f *Functions) CreateProgram() gl.Program {
	f.call("CreateProgram")
	id := f.create(KindProgram)
	if id != 0 {
		f.Programs[id] = &Program{
			Attribs:   make(map[string]gl.Attrib),
			Uniforms:  make(map[string]any),
			locations: make(map[string]int),
			names:     make(map[int]string),
		}
	}
	return gl.Program{V: id}
}

func (f *Functions) CreateRenderbuffer() gl.Renderbuffer {
	f.call("CreateRenderbuffer")
	id := f.create(KindRenderbuffer)
	if id != 0 {
		f.Renderbuffers[id] = &Renderbuffer{}
	}
	return gl.Renderbuffer{V: id}
}

func (f *Functions) CreateShader(ty gl.Enum) gl.Shader {
	f.call("CreateShader")
	id := f.create(KindShader)
	if id != 0 {
		f.Shaders[id] = &Shader{Type: ty}
	}
	return gl.Shader{V: id}
}

func (f *Functions) CreateTexture() gl.Texture {
	f.call("CreateTexture")
	id := f.create(KindTexture)
	if id != 0 {
		f.Textures[id] = &Texture{Params: make(map[gl.Enum]int)}
	}
	return gl.Texture{V: id}
}

// deleteObject removes id from m, counting deletions of dead handles.
// Deleting handle 0 is ignored, as in GL.
func deleteObject[T any](f *Functions, m map[uint]T, id uint) {
	if id == 0 {
		return
	}
	if _, ok := m[id]; !ok {
		f.DoubleDeletes++
		return
	}
	delete(m, id)
}

func (f *Functions) DeleteBuffer(b gl.Buffer) {
	f.call("DeleteBuffer")
	deleteObject(f, f.Buffers, b.V)
}

func (f *Functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.call("DeleteFramebuffer")
	deleteObject(f, f.Framebuffers, fb.V)
}

func (f *Functions) DeleteProgram(p gl.Program) {
	f.call("DeleteProgram")
	deleteObject(f, f.Programs, p.V)
}

func (f *Functions) DeleteRenderbuffer(rb gl.Renderbuffer) {
	f.call("DeleteRenderbuffer")
	deleteObject(f, f.Renderbuffers, rb.V)
}

func (f *Functions) DeleteShader(s gl.Shader) {
	f.call("DeleteShader")
	deleteObject(f, f.Shaders, s.V)
}

func (f *Functions) DeleteTexture(t gl.Texture) {
	f.call("DeleteTexture")
	deleteObject(f, f.Textures, t.V)
}

func (f *Functions) DisableVertexAttribArray(a gl.Attrib) {
	f.call("DisableVertexAttribArray")
	f.AttribEnabled[a] = false
}

func (f *Functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.call("DrawElements")
	d := DrawCall{
		Mode:          mode,
		Count:         count,
		Type:          ty,
		Offset:        offset,
		Program:       f.CurrentProgram,
		Texture:       f.BoundTexture,
		ArrayBuffer:   f.ArrayBuffer,
		ElementBuffer: f.ElementBuffer,
		Framebuffer:   f.BoundFramebuffer,
		Viewport:      f.ViewportRect,
		Blend:         f.Blend,
	}
	if prog, ok := f.Programs[f.CurrentProgram.V]; ok {
		d.Uniforms = make(map[string]any, len(prog.Uniforms))
		for k, v := range prog.Uniforms {
			d.Uniforms[k] = v
		}
	}
	f.Draws = append(f.Draws, d)

	eb := f.Buffers[f.ElementBuffer.V]
	if eb == nil || ty != gl.UNSIGNED_SHORT || offset < 0 || offset+count*2 > len(eb.Data) {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	idx := make([]uint16, count)
	for i := range idx {
		idx[i] = binary.NativeEndian.Uint16(eb.Data[offset+2*i:])
	}
	f.Draws[len(f.Draws)-1].Indices = idx
}

func (f *Functions) Enable(cap gl.Enum) {
	f.call("Enable")
	f.Enabled[cap] = true
}

func (f *Functions) EnableVertexAttribArray(a gl.Attrib) {
	f.call("EnableVertexAttribArray")
	f.AttribEnabled[a] = true
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, rbtarget gl.Enum, rb gl.Renderbuffer) {
	f.call("FramebufferRenderbuffer")
	fb, ok := f.Framebuffers[f.BoundFramebuffer.V]
	if !ok {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	fb.DepthStencil = rb
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.call("FramebufferTexture2D")
	fb, ok := f.Framebuffers[f.BoundFramebuffer.V]
	if !ok {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	fb.Color = t
}

func (f *Functions) GetBufferParameteri(target, pname gl.Enum) int {
	f.call("GetBufferParameteri")
	b := f.boundBuffer(target)
	if b == nil || pname != gl.BUFFER_SIZE {
		f.fail(gl.INVALID_OPERATION)
		return 0
	}
	return len(b.Data)
}

// GetError returns queued errors first in, first out.
func (f *Functions) GetError() gl.Enum {
	f.call("GetError")
	if len(f.errors) == 0 {
		return gl.NO_ERROR
	}
	code := f.errors[0]
	f.errors = f.errors[1:]
	return code
}

func (f *Functions) GetInteger(pname gl.Enum) int {
	f.call("GetInteger")
	switch pname {
	case gl.MAX_VERTEX_ATTRIBS:
		return f.MaxVertexAttribs
	}
	return 0
}

func (f *Functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	f.call("GetProgrami")
	prog, ok := f.Programs[p.V]
	if ok && pname == gl.LINK_STATUS && prog.Linked {
		return gl.TRUE
	}
	return gl.FALSE
}

func (f *Functions) GetProgramInfoLog(p gl.Program) string {
	f.call("GetProgramInfoLog")
	return f.LinkLog
}

func (f *Functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	f.call("GetShaderi")
	sh, ok := f.Shaders[s.V]
	if ok && pname == gl.COMPILE_STATUS && sh.Compiled {
		return gl.TRUE
	}
	return gl.FALSE
}

func (f *Functions) GetShaderInfoLog(s gl.Shader) string {
	f.call("GetShaderInfoLog")
	return f.CompileLog
}

func (f *Functions) GetString(pname gl.Enum) string {
	f.call("GetString")
	switch pname {
	case gl.VENDOR:
		return "gltest"
	case gl.RENDERER:
		return "software"
	case gl.VERSION:
		return "3.3 gltest"
	}
	return ""
}

// GetUniformLocation assigns locations on first use, so every name
// resolves.
func (f *Functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	f.call("GetUniformLocation")
	prog, ok := f.Programs[p.V]
	if !ok || !prog.Linked {
		return gl.Uniform{V: -1}
	}
	loc, ok := prog.locations[name]
	if !ok {
		loc = len(prog.locations)
		prog.locations[name] = loc
		prog.names[loc] = name
	}
	return gl.Uniform{V: loc}
}

func (f *Functions) LinkProgram(p gl.Program) {
	f.call("LinkProgram")
	prog, ok := f.Programs[p.V]
	if !ok {
		return
	}
	prog.Linked = f.LinkLog == ""
}

func (f *Functions) PixelStorei(pname gl.Enum, param int) {
	f.call("PixelStorei")
	f.PixelStore[pname] = param
}

// ReadPixels copies from the color attachment of the bound framebuffer.
// Reading the default framebuffer yields zeros.
func (f *Functions) ReadPixels(x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.call("ReadPixels")
	if len(data) < width*height*4 {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	tex := f.colorTarget()
	if tex == nil {
		clear(data[:width*height*4])
		return
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			dst := data[(row*width+col)*4 : (row*width+col+1)*4]
			px, py := x+col, y+row
			if px < 0 || py < 0 || px >= tex.Width || py >= tex.Height {
				clear(dst)
				continue
			}
			copy(dst, tex.Pix[(py*tex.Width+px)*4:])
		}
	}
}

func (f *Functions) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	f.call("RenderbufferStorage")
	rb, ok := f.Renderbuffers[f.BoundRenderbuffer.V]
	if !ok {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	rb.Format, rb.Width, rb.Height = internalFormat, width, height
}

func (f *Functions) ShaderSource(s gl.Shader, src string) {
	f.call("ShaderSource")
	if sh, ok := f.Shaders[s.V]; ok {
		sh.Source = src
	}
}

func (f *Functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum) {
	f.call("TexImage2D")
	tex := f.boundTexture()
	if tex == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	tex.Width, tex.Height = width, height
	tex.InternalFormat = internalFormat
	tex.Pix = make([]byte, width*height*4)
	tex.Allocations++
}

func (f *Functions) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	f.call("TexSubImage2D")
	tex := f.boundTexture()
	if tex == nil {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	if x < 0 || y < 0 || x+width > tex.Width || y+height > tex.Height || len(data) < width*height*4 {
		f.fail(gl.INVALID_VALUE)
		return
	}
	for row := 0; row < height; row++ {
		dst := ((y+row)*tex.Width + x) * 4
		copy(tex.Pix[dst:dst+width*4], data[row*width*4:])
	}
}

func (f *Functions) TexParameteri(target, pname gl.Enum, param int) {
	f.call("TexParameteri")
	if tex := f.boundTexture(); tex != nil {
		tex.Params[pname] = param
	}
}

func (f *Functions) setUniform(dst gl.Uniform, v any) {
	prog, ok := f.Programs[f.CurrentProgram.V]
	if !ok {
		f.fail(gl.INVALID_OPERATION)
		return
	}
	name, ok := prog.names[dst.V]
	if !ok {
		return
	}
	prog.Uniforms[name] = v
}

func (f *Functions) Uniform1f(dst gl.Uniform, v float32) {
	f.call("Uniform1f")
	f.setUniform(dst, v)
}

func (f *Functions) Uniform1fv(dst gl.Uniform, data []float32) {
	f.call("Uniform1fv")
	f.setUniform(dst, slices.Clone(data))
}

func (f *Functions) Uniform1i(dst gl.Uniform, v int) {
	f.call("Uniform1i")
	f.setUniform(dst, v)
}

func (f *Functions) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	f.call("Uniform2f")
	f.setUniform(dst, [2]float32{v0, v1})
}

func (f *Functions) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	f.call("Uniform3f")
	f.setUniform(dst, [3]float32{v0, v1, v2})
}

func (f *Functions) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	f.call("Uniform4f")
	f.setUniform(dst, [4]float32{v0, v1, v2, v3})
}

func (f *Functions) UniformMatrix3fv(dst gl.Uniform, data []float32) {
	f.call("UniformMatrix3fv")
	f.setUniform(dst, slices.Clone(data))
}

func (f *Functions) UniformMatrix4fv(dst gl.Uniform, data []float32) {
	f.call("UniformMatrix4fv")
	f.setUniform(dst, slices.Clone(data))
}

func (f *Functions) UseProgram(p gl.Program) {
	f.call("UseProgram")
	f.CurrentProgram = p
}

func (f *Functions) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.call("VertexAttribPointer")
	f.AttribPointers[dst] = AttribPointer{
		Size:       size,
		Type:       ty,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
		Buffer:     f.ArrayBuffer,
	}
}

func (f *Functions) Viewport(x, y, width, height int) {
	f.call("Viewport")
	f.ViewportRect = image.Rect(x, y, x+width, y+height)
}

var _ gl.Functions = (*Functions)(nil)
