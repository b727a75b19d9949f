// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl implements gl.Functions on top of a desktop OpenGL 3.3 core
// context through github.com/go-gl/gl.
//
// A context must be current on the calling goroutine (and that goroutine
// must be locked to its OS thread) before New is called and for every call
// made through the returned Functions.
package opengl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	ggl "github.com/gogpu/gfx/gl"
)

// ErrNoVertexArray is returned when the shared vertex array object cannot be
// created.
var ErrNoVertexArray = errors.New("opengl: failed to create vertex array object")

// Functions is a gl.Functions backed by the current OpenGL context.
type Functions struct {
	// Core profile requires a vertex array object to be bound for any
	// vertex attribute state to take effect.
	vao uint32
}

// New loads the GL entry points and binds the shared vertex array object.
func New() (*Functions, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: failed to initialize OpenGL: %w", err)
	}
	f := &Functions{}
	gl.GenVertexArrays(1, &f.vao)
	if f.vao == 0 {
		return nil, ErrNoVertexArray
	}
	gl.BindVertexArray(f.vao)
	return f, nil
}

// Release deletes the shared vertex array object.
func (f *Functions) Release() {
	if f.vao != 0 {
		gl.DeleteVertexArrays(1, &f.vao)
		f.vao = 0
	}
}

func (f *Functions) ActiveTexture(texture ggl.Enum) {
	gl.ActiveTexture(uint32(texture))
}

func (f *Functions) AttachShader(p ggl.Program, s ggl.Shader) {
	gl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindAttribLocation(p ggl.Program, a ggl.Attrib, name string) {
	gl.BindAttribLocation(uint32(p.V), uint32(a), gl.Str(name+"\x00"))
}

func (f *Functions) BindBuffer(target ggl.Enum, b ggl.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindFramebuffer(target ggl.Enum, fb ggl.Framebuffer) {
	gl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) BindRenderbuffer(target ggl.Enum, rb ggl.Renderbuffer) {
	gl.BindRenderbuffer(uint32(target), uint32(rb.V))
}

func (f *Functions) BindTexture(target ggl.Enum, t ggl.Texture) {
	gl.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA ggl.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Functions) BufferData(target ggl.Enum, size int, usage ggl.Enum, data []byte) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(uint32(target), size, ptr, uint32(usage))
}

func (f *Functions) BufferSubData(target ggl.Enum, offset int, src []byte) {
	if len(src) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(src), gl.Ptr(src))
}

func (f *Functions) CheckFramebufferStatus(target ggl.Enum) ggl.Enum {
	return ggl.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (f *Functions) Clear(mask ggl.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) CompileShader(s ggl.Shader) {
	gl.CompileShader(uint32(s.V))
}

func (f *Functions) CreateBuffer() ggl.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return ggl.Buffer{V: uint(b)}
}

func (f *Functions) CreateFramebuffer() ggl.Framebuffer {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return ggl.Framebuffer{V: uint(fb)}
}

func (f *Functions) CreateProgram() ggl.Program {
	return ggl.Program{V: uint(gl.CreateProgram())}
}

func (f *Functions) CreateRenderbuffer() ggl.Renderbuffer {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return ggl.Renderbuffer{V: uint(rb)}
}

func (f *Functions) CreateShader(ty ggl.Enum) ggl.Shader {
	return ggl.Shader{V: uint(gl.CreateShader(uint32(ty)))}
}

func (f *Functions) CreateTexture() ggl.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return ggl.Texture{V: uint(t)}
}

func (f *Functions) DeleteBuffer(b ggl.Buffer) {
	v := uint32(b.V)
	gl.DeleteBuffers(1, &v)
}

func (f *Functions) DeleteFramebuffer(fb ggl.Framebuffer) {
	v := uint32(fb.V)
	gl.DeleteFramebuffers(1, &v)
}

func (f *Functions) DeleteProgram(p ggl.Program) {
	gl.DeleteProgram(uint32(p.V))
}

func (f *Functions) DeleteRenderbuffer(rb ggl.Renderbuffer) {
	v := uint32(rb.V)
	gl.DeleteRenderbuffers(1, &v)
}

func (f *Functions) DeleteShader(s ggl.Shader) {
	gl.DeleteShader(uint32(s.V))
}

func (f *Functions) DeleteTexture(t ggl.Texture) {
	v := uint32(t.V)
	gl.DeleteTextures(1, &v)
}

func (f *Functions) DisableVertexAttribArray(a ggl.Attrib) {
	gl.DisableVertexAttribArray(uint32(a))
}

func (f *Functions) DrawElements(mode ggl.Enum, count int, ty ggl.Enum, offset int) {
	gl.DrawElements(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset))
}

func (f *Functions) Enable(cap ggl.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a ggl.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) FramebufferRenderbuffer(target, attachment, renderbuffertarget ggl.Enum, rb ggl.Renderbuffer) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(renderbuffertarget), uint32(rb.V))
}

func (f *Functions) FramebufferTexture2D(target, attachment, texTarget ggl.Enum, t ggl.Texture, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), uint32(t.V), int32(level))
}

func (f *Functions) GetBufferParameteri(target, pname ggl.Enum) int {
	var v int32
	gl.GetBufferParameteriv(uint32(target), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetError() ggl.Enum {
	return ggl.Enum(gl.GetError())
}

func (f *Functions) GetInteger(pname ggl.Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgrami(p ggl.Program, pname ggl.Enum) int {
	var v int32
	gl.GetProgramiv(uint32(p.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetProgramInfoLog(p ggl.Program) string {
	var n int32
	gl.GetProgramiv(uint32(p.V), gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(uint32(p.V), n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (f *Functions) GetShaderi(s ggl.Shader, pname ggl.Enum) int {
	var v int32
	gl.GetShaderiv(uint32(s.V), uint32(pname), &v)
	return int(v)
}

func (f *Functions) GetShaderInfoLog(s ggl.Shader) string {
	var n int32
	gl.GetShaderiv(uint32(s.V), gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return ""
	}
	buf := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(uint32(s.V), n, nil, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func (f *Functions) GetString(pname ggl.Enum) string {
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (f *Functions) GetUniformLocation(p ggl.Program, name string) ggl.Uniform {
	return ggl.Uniform{V: int(gl.GetUniformLocation(uint32(p.V), gl.Str(name+"\x00")))}
}

func (f *Functions) LinkProgram(p ggl.Program) {
	gl.LinkProgram(uint32(p.V))
}

func (f *Functions) PixelStorei(pname ggl.Enum, param int) {
	gl.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) ReadPixels(x, y, width, height int, format, ty ggl.Enum, data []byte) {
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), gl.Ptr(data))
}

func (f *Functions) RenderbufferStorage(target, internalformat ggl.Enum, width, height int) {
	gl.RenderbufferStorage(uint32(target), uint32(internalformat), int32(width), int32(height))
}

func (f *Functions) ShaderSource(s ggl.Shader, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(uint32(s.V), 1, csrc, nil)
}

func (f *Functions) TexImage2D(target ggl.Enum, level int, internalFormat ggl.Enum, width, height int, format, ty ggl.Enum) {
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), nil)
}

func (f *Functions) TexSubImage2D(target ggl.Enum, level int, x, y, width, height int, format, ty ggl.Enum, data []byte) {
	gl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), gl.Ptr(data))
}

func (f *Functions) TexParameteri(target, pname ggl.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) Uniform1f(dst ggl.Uniform, v float32) {
	gl.Uniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform1fv(dst ggl.Uniform, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.Uniform1fv(int32(dst.V), int32(len(data)), &data[0])
}

func (f *Functions) Uniform1i(dst ggl.Uniform, v int) {
	gl.Uniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform2f(dst ggl.Uniform, v0, v1 float32) {
	gl.Uniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3f(dst ggl.Uniform, v0, v1, v2 float32) {
	gl.Uniform3f(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4f(dst ggl.Uniform, v0, v1, v2, v3 float32) {
	gl.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) UniformMatrix3fv(dst ggl.Uniform, data []float32) {
	gl.UniformMatrix3fv(int32(dst.V), int32(len(data)/9), false, &data[0])
}

func (f *Functions) UniformMatrix4fv(dst ggl.Uniform, data []float32) {
	gl.UniformMatrix4fv(int32(dst.V), int32(len(data)/16), false, &data[0])
}

func (f *Functions) UseProgram(p ggl.Program) {
	gl.UseProgram(uint32(p.V))
}

func (f *Functions) VertexAttribPointer(dst ggl.Attrib, size int, ty ggl.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointer(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), gl.PtrOffset(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

var _ ggl.Functions = (*Functions)(nil)
